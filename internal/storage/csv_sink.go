// Package storage persists option chain snapshots into the partitioned,
// append-only CSV layout downstream analytics read byte-for-byte:
//
//	{base}/{index}/{bucket}/{signedOffset}/{date}.csv
//	{base}/overview/{index}/{date}.csv
//	{base}/{index}/{bucket}/{date}_debug.json
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gridsix/g6/internal/broker"
	"github.com/gridsix/g6/internal/market"
	"github.com/gridsix/g6/pkg/logger"
)

// optionHeader is the fixed 27-column snapshot schema. Never reorder.
var optionHeader = []string{
	"timestamp", "index", "expiry_tag", "offset", "strike", "atm", "offset_price",
	"ce", "pe", "tp", "avg_ce", "avg_pe", "avg_tp",
	"ce_vol", "pe_vol", "ce_oi", "pe_oi",
	"ce_iv", "pe_iv", "ce_delta", "pe_delta", "ce_theta", "pe_theta",
	"ce_vega", "pe_vega", "ce_gamma", "pe_gamma",
}

// CsvSink writes snapshot and overview rows under a base directory.
type CsvSink struct {
	baseDir string
	log     *logger.Logger
	now     func() time.Time
}

// NewCsvSink creates the sink and its base directory.
func NewCsvSink(baseDir string, log *logger.Logger) (*CsvSink, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base dir %s: %w", baseDir, err)
	}

	log.WithField("base_dir", baseDir).Info("CSV sink initialized")

	return &CsvSink{
		baseDir: baseDir,
		log:     log.WithField("module", "storage"),
		now:     time.Now,
	}, nil
}

// BaseDir returns the sink's root directory.
func (s *CsvSink) BaseDir() string {
	return s.baseDir
}

// WriteOptionsData classifies the snapshot's expiry into a bucket, rounds
// the collection timestamp, pairs call/put legs per strike and appends one
// row per offset, plus the overview row and the per-call debug record.
// An I/O failure is fatal for this (index, expiry) unit and is returned to
// the caller; no retry happens here.
func (s *CsvSink) WriteOptionsData(index market.Index, expiryDate time.Time, legs map[string]broker.OptionLeg, ts time.Time, indexPrice float64, ohlc *market.OHLC) error {
	today := s.now()
	bucket := ClassifyExpiry(expiryDate, today)

	indexPrice = s.resolveIndexPrice(index, indexPrice, legs)
	atm := index.ATMStrike(indexPrice)

	pcr := PCR(legs)

	dayWidth := 0.0
	if ohlc != nil {
		dayWidth = ohlc.DayWidth()
	}

	if err := s.WriteOverview(index, bucket, pcr, dayWidth, ts, indexPrice); err != nil {
		return err
	}

	rounded := RoundTo30s(ts)
	rowTime := rounded.Format(rowTimeFormat)
	fileDate := ts.Format(fileDateFormat)

	bucketDir := filepath.Join(s.baseDir, string(index), string(bucket))
	if err := os.MkdirAll(bucketDir, 0o755); err != nil {
		return fmt.Errorf("create bucket dir: %w", err)
	}

	for _, pair := range pairByStrike(legs) {
		offset := int(pair.strike - atm)

		optionDir := filepath.Join(bucketDir, OffsetDir(offset))
		if err := os.MkdirAll(optionDir, 0o755); err != nil {
			return fmt.Errorf("create offset dir: %w", err)
		}

		row := snapshotRow(rowTime, index, bucket, offset, indexPrice, atm, pair)
		path := filepath.Join(optionDir, fileDate+".csv")
		if err := appendRow(path, optionHeader, row); err != nil {
			return fmt.Errorf("append option row %s: %w", path, err)
		}
	}

	debug := debugRecord{
		Timestamp:        ts.Format(debugTimeFormat),
		Index:            string(index),
		Expiry:           expiryDate.Format(fileDateFormat),
		ExpiryCode:       string(bucket),
		IndexPrice:       indexPrice,
		ATMStrike:        atm,
		PCR:              pcr,
		DayWidth:         dayWidth,
		DataCount:        len(legs),
		RoundedTimestamp: rowTime,
	}
	if err := s.writeDebug(bucketDir, fileDate, debug); err != nil {
		return err
	}

	s.log.WithFields(map[string]interface{}{
		"index":  index,
		"bucket": bucket,
		"legs":   len(legs),
		"atm":    atm,
	}).Info("Snapshot written")

	return nil
}

// resolveIndexPrice fills a missing index price from the per-index default
// table, preferring a spot level embedded in any leg when one is present.
func (s *CsvSink) resolveIndexPrice(index market.Index, indexPrice float64, legs map[string]broker.OptionLeg) float64 {
	if indexPrice != 0 {
		return indexPrice
	}

	indexPrice = index.DefaultPrice()
	for _, symbol := range sortedSymbols(legs) {
		if embedded := legs[symbol].IndexPrice; embedded > 0 {
			return embedded
		}
	}
	return indexPrice
}

// PCR is the put/call ratio over the snapshot's legs: sum of put open
// interest over sum of call open interest, 0 when there is no call OI.
func PCR(legs map[string]broker.OptionLeg) float64 {
	var putOI, callOI float64
	for _, leg := range legs {
		switch leg.Kind {
		case broker.Put:
			putOI += float64(leg.OI)
		case broker.Call:
			callOI += float64(leg.OI)
		}
	}

	if callOI == 0 {
		return 0
	}
	return putOI / callOI
}

// OffsetDir renders a signed offset as its directory name: positive
// offsets get a "+" prefix, zero and negative keep the plain numeral.
func OffsetDir(offset int) string {
	if offset > 0 {
		return fmt.Sprintf("+%d", offset)
	}
	return strconv.Itoa(offset)
}

// strikePair holds the call and put legs at one strike. A missing leg
// stays nil and persists as zero-filled fields.
type strikePair struct {
	strike float64
	call   *broker.OptionLeg
	put    *broker.OptionLeg
}

// pairByStrike groups legs into call/put pairs, ordered by strike so row
// emission is deterministic.
func pairByStrike(legs map[string]broker.OptionLeg) []strikePair {
	byStrike := make(map[float64]*strikePair)
	for _, symbol := range sortedSymbols(legs) {
		leg := legs[symbol]
		pair, ok := byStrike[leg.Strike]
		if !ok {
			pair = &strikePair{strike: leg.Strike}
			byStrike[leg.Strike] = pair
		}

		l := leg
		switch leg.Kind {
		case broker.Call:
			pair.call = &l
		case broker.Put:
			pair.put = &l
		}
	}

	pairs := make([]strikePair, 0, len(byStrike))
	for _, pair := range byStrike {
		pairs = append(pairs, *pair)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].strike < pairs[j].strike })
	return pairs
}

// snapshotRow renders one 27-column row. The strike column carries the
// index price, as the historical files always have; the true strike is
// recoverable as offset_price.
func snapshotRow(rowTime string, index market.Index, bucket Bucket, offset int, indexPrice, atm float64, pair strikePair) []string {
	var call, put broker.OptionLeg
	if pair.call != nil {
		call = *pair.call
	}
	if pair.put != nil {
		put = *pair.put
	}

	offsetPrice := atm + float64(offset)

	return []string{
		rowTime,
		string(index),
		string(bucket),
		strconv.Itoa(offset),
		formatFloat(indexPrice),
		formatFloat(atm),
		formatFloat(offsetPrice),
		formatFloat(call.LastPrice),
		formatFloat(put.LastPrice),
		formatFloat(call.LastPrice + put.LastPrice),
		formatFloat(call.AveragePrice),
		formatFloat(put.AveragePrice),
		formatFloat(call.AveragePrice + put.AveragePrice),
		strconv.FormatInt(call.Volume, 10),
		strconv.FormatInt(put.Volume, 10),
		strconv.FormatInt(call.OI, 10),
		strconv.FormatInt(put.OI, 10),
		formatFloat(call.IV),
		formatFloat(put.IV),
		formatFloat(call.Delta),
		formatFloat(put.Delta),
		formatFloat(call.Theta),
		formatFloat(put.Theta),
		formatFloat(call.Vega),
		formatFloat(put.Vega),
		formatFloat(call.Gamma),
		formatFloat(put.Gamma),
	}
}

// debugRecord is the per-invocation JSON context, overwritten per call.
type debugRecord struct {
	Timestamp        string  `json:"timestamp"`
	Index            string  `json:"index"`
	Expiry           string  `json:"expiry"`
	ExpiryCode       string  `json:"expiry_code"`
	IndexPrice       float64 `json:"index_price"`
	ATMStrike        float64 `json:"atm_strike"`
	PCR              float64 `json:"pcr"`
	DayWidth         float64 `json:"day_width"`
	DataCount        int     `json:"data_count"`
	RoundedTimestamp string  `json:"rounded_timestamp"`
}

func (s *CsvSink) writeDebug(bucketDir, fileDate string, record debugRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal debug record: %w", err)
	}

	path := filepath.Join(bucketDir, fileDate+"_debug.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write debug record %s: %w", path, err)
	}
	return nil
}

// appendRow appends one CSV row, writing the header first when the file
// does not exist yet. A row is flushed whole or not at all.
func appendRow(path string, header, row []string) error {
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func sortedSymbols(legs map[string]broker.OptionLeg) []string {
	symbols := make([]string, 0, len(legs))
	for symbol := range legs {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
