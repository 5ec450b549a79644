package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gridsix/g6/internal/market"
)

// OptionRecord is one parsed row of a per-offset snapshot file. Timestamps
// stay in their on-disk day-first string form.
type OptionRecord struct {
	Timestamp   string  `json:"timestamp"`
	Index       string  `json:"index"`
	ExpiryTag   Bucket  `json:"expiry_tag"`
	Offset      int     `json:"offset"`
	Strike      float64 `json:"strike"`
	ATM         float64 `json:"atm"`
	OffsetPrice float64 `json:"offset_price"`
	CE          float64 `json:"ce"`
	PE          float64 `json:"pe"`
	TP          float64 `json:"tp"`
	AvgCE       float64 `json:"avg_ce"`
	AvgPE       float64 `json:"avg_pe"`
	AvgTP       float64 `json:"avg_tp"`
	CEVol       int64   `json:"ce_vol"`
	PEVol       int64   `json:"pe_vol"`
	CEOI        int64   `json:"ce_oi"`
	PEOI        int64   `json:"pe_oi"`
	CEIV        float64 `json:"ce_iv"`
	PEIV        float64 `json:"pe_iv"`
	CEDelta     float64 `json:"ce_delta"`
	PEDelta     float64 `json:"pe_delta"`
	CETheta     float64 `json:"ce_theta"`
	PETheta     float64 `json:"pe_theta"`
	CEVega      float64 `json:"ce_vega"`
	PEVega      float64 `json:"pe_vega"`
	CEGamma     float64 `json:"ce_gamma"`
	PEGamma     float64 `json:"pe_gamma"`
}

// OverviewRecord is one parsed row of an overview file.
type OverviewRecord struct {
	Timestamp    string  `json:"timestamp"`
	Index        string  `json:"index"`
	PCRThisWeek  float64 `json:"pcr_this_week"`
	PCRNextWeek  float64 `json:"pcr_next_week"`
	PCRThisMonth float64 `json:"pcr_this_month"`
	PCRNextMonth float64 `json:"pcr_next_month"`
	DayWidth     float64 `json:"day_width"`
}

// ReadOptionData reads the day's rows for one (index, bucket, offset).
// A missing file yields an empty slice, not an error.
func (s *CsvSink) ReadOptionData(index market.Index, bucket Bucket, offset int, date time.Time) ([]OptionRecord, error) {
	path := filepath.Join(s.baseDir, string(index), string(bucket), OffsetDir(offset), date.Format(fileDateFormat)+".csv")

	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		s.log.WithField("path", path).Warn("No option file found")
		return []OptionRecord{}, nil
	}

	records := make([]OptionRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(optionHeader) {
			return nil, fmt.Errorf("malformed option row in %s: %d columns", path, len(row))
		}
		records = append(records, OptionRecord{
			Timestamp:   row[0],
			Index:       row[1],
			ExpiryTag:   Bucket(row[2]),
			Offset:      atoi(row[3]),
			Strike:      atof(row[4]),
			ATM:         atof(row[5]),
			OffsetPrice: atof(row[6]),
			CE:          atof(row[7]),
			PE:          atof(row[8]),
			TP:          atof(row[9]),
			AvgCE:       atof(row[10]),
			AvgPE:       atof(row[11]),
			AvgTP:       atof(row[12]),
			CEVol:       atoi64(row[13]),
			PEVol:       atoi64(row[14]),
			CEOI:        atoi64(row[15]),
			PEOI:        atoi64(row[16]),
			CEIV:        atof(row[17]),
			PEIV:        atof(row[18]),
			CEDelta:     atof(row[19]),
			PEDelta:     atof(row[20]),
			CETheta:     atof(row[21]),
			PETheta:     atof(row[22]),
			CEVega:      atof(row[23]),
			PEVega:      atof(row[24]),
			CEGamma:     atof(row[25]),
			PEGamma:     atof(row[26]),
		})
	}

	return records, nil
}

// ReadOptionsOverview reads the day's overview rows for an index in write
// order. A missing file yields an empty slice.
func (s *CsvSink) ReadOptionsOverview(index market.Index, date time.Time) ([]OverviewRecord, error) {
	path := filepath.Join(s.baseDir, "overview", string(index), date.Format(fileDateFormat)+".csv")

	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		s.log.WithField("path", path).Warn("No overview file found")
		return []OverviewRecord{}, nil
	}

	records := make([]OverviewRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(overviewHeader) {
			return nil, fmt.Errorf("malformed overview row in %s: %d columns", path, len(row))
		}
		records = append(records, OverviewRecord{
			Timestamp:    row[0],
			Index:        row[1],
			PCRThisWeek:  atof(row[2]),
			PCRNextWeek:  atof(row[3]),
			PCRThisMonth: atof(row[4]),
			PCRNextMonth: atof(row[5]),
			DayWidth:     atof(row[6]),
		})
	}

	return records, nil
}

// readCSV returns the data rows of a headered CSV file, nil (no error)
// when the file does not exist.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) <= 1 {
		return [][]string{}, nil
	}
	return rows[1:], nil
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func atoi64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
