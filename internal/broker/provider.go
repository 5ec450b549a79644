package broker

import (
	"context"
	"time"

	"github.com/gridsix/g6/internal/market"
)

// Provider is the capability surface the collector consumes. A concrete
// implementation may be a live broker binding or a synthetic stand-in;
// both must satisfy this exact method set.
type Provider interface {
	// ATMStrike returns the current at-the-money strike for the index,
	// already rounded to the index strike step.
	ATMStrike(ctx context.Context, index market.Index) (float64, error)

	// ExpiryDates returns the available option expiry dates for the index,
	// sorted ascending. Dates are calendar days (midnight UTC).
	ExpiryDates(ctx context.Context, index market.Index) ([]time.Time, error)

	// OptionInstruments returns the listed option contracts for the index
	// matching the expiry date and any of the given strikes.
	OptionInstruments(ctx context.Context, index market.Index, expiry time.Time, strikes []float64) ([]Instrument, error)

	// Quotes returns live quote fields keyed by instrument ref string.
	Quotes(ctx context.Context, refs []InstrumentRef) (map[string]Quote, error)

	// IndexData returns the current spot price and daily OHLC for the index.
	IndexData(ctx context.Context, index market.Index) (float64, market.OHLC, error)

	// Close releases provider resources.
	Close() error
}

// EnrichWithQuotes fetches quotes for the instruments and merges them into
// option legs keyed by trading symbol. Instruments without a quote are
// dropped; the snapshot writer treats the missing leg as zero-filled.
func EnrichWithQuotes(ctx context.Context, p Provider, instruments []Instrument) (map[string]OptionLeg, error) {
	if len(instruments) == 0 {
		return map[string]OptionLeg{}, nil
	}

	refs := make([]InstrumentRef, 0, len(instruments))
	for _, inst := range instruments {
		refs = append(refs, inst.Ref())
	}

	quotes, err := p.Quotes(ctx, refs)
	if err != nil {
		return nil, err
	}

	legs := make(map[string]OptionLeg, len(instruments))
	for _, inst := range instruments {
		q, ok := quotes[inst.Ref().String()]
		if !ok {
			continue
		}
		legs[inst.TradingSymbol] = OptionLeg{
			TradingSymbol: inst.TradingSymbol,
			Kind:          inst.Kind,
			Strike:        inst.Strike,
			LastPrice:     q.LastPrice,
			AveragePrice:  q.AveragePrice,
			Volume:        q.Volume,
			OI:            q.OI,
			IV:            q.IV,
			Delta:         q.Delta,
			Theta:         q.Theta,
			Vega:          q.Vega,
			Gamma:         q.Gamma,
		}
	}

	return legs, nil
}
