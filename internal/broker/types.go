package broker

import (
	"time"
)

// OptionKind distinguishes call and put legs using the exchange notation.
type OptionKind string

const (
	Call OptionKind = "CE"
	Put  OptionKind = "PE"
)

// Instrument is one listed option contract.
type Instrument struct {
	Token         int64
	TradingSymbol string
	Name          string
	Exchange      string
	Segment       string
	Kind          OptionKind
	Strike        float64
	Expiry        time.Time
	LotSize       int
	TickSize      float64
}

// Ref returns the exchange-qualified reference used for quote lookups.
func (i Instrument) Ref() InstrumentRef {
	return InstrumentRef{Exchange: i.Exchange, TradingSymbol: i.TradingSymbol}
}

// InstrumentRef addresses an instrument on its exchange.
type InstrumentRef struct {
	Exchange      string
	TradingSymbol string
}

func (r InstrumentRef) String() string {
	return r.Exchange + ":" + r.TradingSymbol
}

// Quote carries the live fields of one instrument.
type Quote struct {
	LastPrice    float64
	AveragePrice float64
	Volume       int64
	OI           int64
	IV           float64
	Delta        float64
	Theta        float64
	Vega         float64
	Gamma        float64
}

// OptionLeg is an instrument merged with its latest quote. Legs are owned
// transiently per collection cycle; only derived fields are persisted.
type OptionLeg struct {
	TradingSymbol string
	Kind          OptionKind
	Strike        float64

	LastPrice    float64
	AveragePrice float64
	Volume       int64
	OI           int64
	IV           float64
	Delta        float64
	Theta        float64
	Vega         float64
	Gamma        float64

	// IndexPrice is the spot level some providers embed on each leg;
	// 0 when absent.
	IndexPrice float64
}
