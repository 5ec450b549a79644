package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrikeStep(t *testing.T) {
	assert.Equal(t, 50.0, Nifty.StrikeStep())
	assert.Equal(t, 100.0, BankNifty.StrikeStep())
	assert.Equal(t, 50.0, FinNifty.StrikeStep())
	assert.Equal(t, 50.0, MidcpNifty.StrikeStep())
	assert.Equal(t, 100.0, Sensex.StrikeStep())
}

func TestATMStrike(t *testing.T) {
	assert.Equal(t, 24800.0, Nifty.ATMStrike(24812.35))
	assert.Equal(t, 24850.0, Nifty.ATMStrike(24826.0))
	assert.Equal(t, 54200.0, BankNifty.ATMStrike(54249.9))
	assert.Equal(t, 54300.0, BankNifty.ATMStrike(54250.0))
}

func TestParseIndex(t *testing.T) {
	for _, index := range All() {
		got, err := ParseIndex(string(index))
		assert.NoError(t, err)
		assert.Equal(t, index, got)
	}

	got, err := ParseIndex("nifty")
	assert.NoError(t, err)
	assert.Equal(t, Nifty, got)

	_, err = ParseIndex("DAX")
	assert.Error(t, err)
}

func TestMonthlyOnly(t *testing.T) {
	assert.False(t, Nifty.MonthlyOnly())
	assert.True(t, BankNifty.MonthlyOnly())
	assert.True(t, FinNifty.MonthlyOnly())
	assert.True(t, MidcpNifty.MonthlyOnly())
	assert.False(t, Sensex.MonthlyOnly())
}

func TestPool(t *testing.T) {
	assert.Equal(t, "NFO", Nifty.Pool())
	assert.Equal(t, "BFO", Sensex.Pool())
	assert.Equal(t, "NFO", Index("UNKNOWN").Pool())
}

func TestDayWidth(t *testing.T) {
	bar := OHLC{Open: 24750, High: 24900, Low: 24600, Close: 24800}
	assert.Equal(t, 300.0, bar.DayWidth())
}
