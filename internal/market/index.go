package market

import (
	"fmt"
	"math"
	"strings"
)

// Index identifies a tracked market index by its option chain symbol.
type Index string

const (
	Nifty      Index = "NIFTY"
	BankNifty  Index = "BANKNIFTY"
	FinNifty   Index = "FINNIFTY"
	MidcpNifty Index = "MIDCPNIFTY"
	Sensex     Index = "SENSEX"
)

// All lists every supported index in collection order.
func All() []Index {
	return []Index{Nifty, BankNifty, FinNifty, MidcpNifty, Sensex}
}

// ParseIndex maps a case-insensitive name to a supported index.
func ParseIndex(name string) (Index, error) {
	candidate := Index(strings.ToUpper(strings.TrimSpace(name)))
	for _, index := range All() {
		if index == candidate {
			return index, nil
		}
	}
	return "", fmt.Errorf("unknown index %q", name)
}

// poolFor maps an index to the exchange segment its options trade on.
var poolFor = map[Index]string{
	Nifty:      "NFO",
	BankNifty:  "NFO",
	FinNifty:   "NFO",
	MidcpNifty: "NFO",
	Sensex:     "BFO",
}

// spotFor maps an index to the (exchange, symbol) pair used for LTP queries
// against the cash market.
var spotFor = map[Index][2]string{
	Nifty:      {"NSE", "NIFTY 50"},
	BankNifty:  {"NSE", "NIFTY BANK"},
	FinNifty:   {"NSE", "NIFTY FIN SERVICE"},
	MidcpNifty: {"NSE", "NIFTY MIDCAP SELECT"},
	Sensex:     {"BSE", "SENSEX"},
}

// defaultPrice is the last-resort spot level used when no live index price
// is available at write time.
var defaultPrice = map[Index]float64{
	Nifty:      24800,
	BankNifty:  54200,
	FinNifty:   25900,
	MidcpNifty: 22000,
	Sensex:     80900,
}

// monthlyOnly marks indices whose weekly contracts were discontinued; for
// these, weekly expiry rules resolve through the monthly branch.
var monthlyOnly = map[Index]bool{
	BankNifty:  true,
	FinNifty:   true,
	MidcpNifty: true,
}

// Pool returns the options exchange segment for the index ("NFO" when unknown).
func (i Index) Pool() string {
	if pool, ok := poolFor[i]; ok {
		return pool
	}
	return "NFO"
}

// Spot returns the (exchange, symbol) pair for cash-market LTP lookups.
func (i Index) Spot() (exchange, symbol string) {
	if s, ok := spotFor[i]; ok {
		return s[0], s[1]
	}
	return "NSE", string(i)
}

// StrikeStep returns the strike ladder spacing for the index: 100 for the
// large-denomination indices, 50 for all others.
func (i Index) StrikeStep() float64 {
	if i == BankNifty || i == Sensex {
		return 100
	}
	return 50
}

// DefaultPrice returns the fallback spot level for the index, 0 when the
// index is unknown.
func (i Index) DefaultPrice() float64 {
	return defaultPrice[i]
}

// MonthlyOnly reports whether the index trades monthly expiries only.
func (i Index) MonthlyOnly() bool {
	return monthlyOnly[i]
}

// ATMStrike rounds a spot price to the nearest strike on the index ladder.
func (i Index) ATMStrike(price float64) float64 {
	step := i.StrikeStep()
	return math.Round(price/step) * step
}

// OHLC is a daily open/high/low/close bar for an index.
type OHLC struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// DayWidth is the intraday range of the bar.
func (o OHLC) DayWidth() float64 {
	return o.High - o.Low
}
