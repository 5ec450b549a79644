package broker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gridsix/g6/internal/expiry"
	"github.com/gridsix/g6/internal/market"
)

// SimProvider is a deterministic synthetic Provider used for development,
// tests and as the stand-in when no live broker binding is configured.
// Prices are derived from the per-index default spot levels so runs are
// reproducible.
type SimProvider struct {
	now func() time.Time
}

// NewSimProvider creates a synthetic provider.
func NewSimProvider() *SimProvider {
	return &SimProvider{now: time.Now}
}

// Close implements Provider.
func (p *SimProvider) Close() error {
	return nil
}

// ATMStrike returns the default spot level rounded to the index strike step.
func (p *SimProvider) ATMStrike(_ context.Context, index market.Index) (float64, error) {
	return index.ATMStrike(p.spot(index)), nil
}

// ExpiryDates generates the listed expiries: weekly pair plus the next two
// monthly expiries for weekly indices, monthlies only otherwise.
func (p *SimProvider) ExpiryDates(_ context.Context, index market.Index) ([]time.Time, error) {
	today := p.now()

	thisWeek := expiry.NextWeeklyExpiry(today)
	nextWeek := thisWeek.AddDate(0, 0, 7)
	thisMonth := expiry.MonthlyExpiryOf(today)
	nextMonth := expiry.MonthlyExpiryOf(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0))

	if index.MonthlyOnly() {
		return []time.Time{thisMonth, nextMonth}, nil
	}
	return []time.Time{thisWeek, nextWeek, thisMonth, nextMonth}, nil
}

// OptionInstruments lists a CE and a PE contract per requested strike.
func (p *SimProvider) OptionInstruments(_ context.Context, index market.Index, exp time.Time, strikes []float64) ([]Instrument, error) {
	pool := index.Pool()
	expTag := strings.ToUpper(exp.Format("06Jan"))

	instruments := make([]Instrument, 0, len(strikes)*2)
	for _, strike := range strikes {
		for _, kind := range []OptionKind{Call, Put} {
			tokenOffset := int64(1)
			if kind == Put {
				tokenOffset = 2
			}
			instruments = append(instruments, Instrument{
				Token:         int64(strike)*10 + tokenOffset,
				TradingSymbol: fmt.Sprintf("%s%s%d%s", index, expTag, int(strike), kind),
				Name:          string(index),
				Exchange:      pool,
				Segment:       pool + "-OPT",
				Kind:          kind,
				Strike:        strike,
				Expiry:        expiry.DateOf(exp),
				LotSize:       p.lotSize(index),
				TickSize:      0.05,
			})
		}
	}

	return instruments, nil
}

// Quotes synthesizes quote fields from the trading symbol alone so any ref
// produced by OptionInstruments round-trips.
func (p *SimProvider) Quotes(_ context.Context, refs []InstrumentRef) (map[string]Quote, error) {
	quotes := make(map[string]Quote, len(refs))

	for _, ref := range refs {
		kind, strike, ok := parseSymbol(ref.TradingSymbol)
		if !ok {
			continue
		}

		spot := p.spot(indexOf(ref.TradingSymbol))

		// Rough intrinsic value plus a flat time premium.
		var last float64
		if kind == Call {
			last = spot - strike + 200
		} else {
			last = strike - spot + 200
		}
		if last < 0 {
			last = 0
		}

		sign := 1.0
		if kind == Put {
			sign = -1
		}

		quotes[ref.String()] = Quote{
			LastPrice:    last,
			AveragePrice: last * 1.02,
			Volume:       100000,
			OI:           50000,
			IV:           14.5,
			Delta:        sign * 0.5,
			Theta:        -4.2,
			Vega:         9.1,
			Gamma:        0.0012,
		}
	}

	return quotes, nil
}

// IndexData returns the default spot level and a synthetic daily bar.
func (p *SimProvider) IndexData(_ context.Context, index market.Index) (float64, market.OHLC, error) {
	spot := p.spot(index)
	return spot, market.OHLC{
		Open:  spot * 0.998,
		High:  spot * 1.004,
		Low:   spot * 0.995,
		Close: spot,
	}, nil
}

func (p *SimProvider) spot(index market.Index) float64 {
	if price := index.DefaultPrice(); price > 0 {
		return price
	}
	return 20000
}

func (p *SimProvider) lotSize(index market.Index) int {
	if index == market.Nifty {
		return 50
	}
	return 25
}

// indexOf matches a trading symbol back to its index by prefix.
func indexOf(symbol string) market.Index {
	for _, index := range market.All() {
		if strings.HasPrefix(symbol, string(index)) {
			return index
		}
	}
	return market.Index("")
}

// parseSymbol extracts the option kind and strike from a synthetic trading
// symbol of the form INDEX + expiry tag + strike + CE|PE.
func parseSymbol(symbol string) (OptionKind, float64, bool) {
	var kind OptionKind
	switch {
	case strings.HasSuffix(symbol, string(Call)):
		kind = Call
	case strings.HasSuffix(symbol, string(Put)):
		kind = Put
	default:
		return "", 0, false
	}

	body := symbol[:len(symbol)-2]
	i := len(body)
	for i > 0 && body[i-1] >= '0' && body[i-1] <= '9' {
		i--
	}
	strike, err := strconv.ParseFloat(body[i:], 64)
	if err != nil {
		return "", 0, false
	}

	return kind, strike, true
}
