package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"19.99", 1999},
		{"250", 25000},
		{"0.01", 1},
		{"  100.50 ", 10050},
		{"10.005", 1001}, // sub-cent precision rounds half away from zero
	}
	for _, c := range cases {
		got, err := ToMinorUnits(c.amount)
		require.NoError(t, err, "amount %q", c.amount)
		assert.Equal(t, c.want, got, "amount %q", c.amount)
	}
}

func TestToMinorUnitsRejectsBadInput(t *testing.T) {
	for _, amount := range []string{"", "abc", "12,50", "0", "-5"} {
		_, err := ToMinorUnits(amount)
		assert.Error(t, err, "amount %q", amount)
	}
}
