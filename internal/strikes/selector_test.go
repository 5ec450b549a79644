package strikes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	got := Select(24800, 2, 2, 50)
	assert.Equal(t, []float64{24700, 24750, 24800, 24850, 24900}, got)
}

func TestSelectAsymmetric(t *testing.T) {
	got := Select(54200, 1, 3, 100)
	assert.Equal(t, []float64{54100, 54200, 54300, 54400, 54500}, got)
}

func TestSelectATMOnly(t *testing.T) {
	got := Select(24800, 0, 0, 50)
	assert.Equal(t, []float64{24800}, got)
}
