package collector

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridsix/g6/internal/expiry"
	"github.com/gridsix/g6/internal/market"
)

// Params configures which chains one collection cycle walks.
type Params struct {
	Indices []IndexParams `yaml:"indices"`
}

// IndexParams holds the per-index collection parameters.
type IndexParams struct {
	Index      market.Index  `yaml:"index"`
	Disabled   bool          `yaml:"disabled,omitempty"`
	Expiries   []expiry.Rule `yaml:"expiries"`
	StrikesITM int           `yaml:"strikes_itm"`
	StrikesOTM int           `yaml:"strikes_otm"`
}

// DefaultParams covers every supported index: all four rules for weekly
// indices, the two monthly rules for monthly-only ones, ten strikes each
// side of ATM.
func DefaultParams() Params {
	var indices []IndexParams
	for _, index := range market.All() {
		rules := []expiry.Rule{expiry.ThisWeek, expiry.NextWeek, expiry.ThisMonth, expiry.NextMonth}
		if index.MonthlyOnly() {
			rules = []expiry.Rule{expiry.ThisMonth, expiry.NextMonth}
		}
		indices = append(indices, IndexParams{
			Index:      index,
			Expiries:   rules,
			StrikesITM: 10,
			StrikesOTM: 10,
		})
	}
	return Params{Indices: indices}
}

// LoadParams reads collection parameters from a YAML file. Unknown fields
// fail immediately so typos surface at startup rather than as silently
// ignored settings.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read params file: %w", err)
	}

	var params Params
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&params); err != nil {
		return Params{}, fmt.Errorf("decode params file %s: %w", path, err)
	}

	if err := params.Validate(); err != nil {
		return Params{}, fmt.Errorf("invalid params file %s: %w", path, err)
	}

	return params, nil
}

// Validate checks the parameters are well-formed.
func (p Params) Validate() error {
	if len(p.Indices) == 0 {
		return fmt.Errorf("no indices configured")
	}

	for _, ip := range p.Indices {
		if ip.Index == "" {
			return fmt.Errorf("index name must not be empty")
		}
		if ip.StrikesITM < 0 || ip.StrikesOTM < 0 {
			return fmt.Errorf("%s: strike counts must be non-negative", ip.Index)
		}
		if len(ip.Expiries) == 0 {
			return fmt.Errorf("%s: at least one expiry rule is required", ip.Index)
		}
		for _, rule := range ip.Expiries {
			if !rule.Known() {
				return fmt.Errorf("%s: unknown expiry rule %q", ip.Index, rule)
			}
		}
	}

	return nil
}

// Active returns the enabled index parameters in configured order.
func (p Params) Active() []IndexParams {
	active := make([]IndexParams, 0, len(p.Indices))
	for _, ip := range p.Indices {
		if !ip.Disabled {
			active = append(active, ip)
		}
	}
	return active
}
