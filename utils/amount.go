package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ToMinorUnits converts a decimal amount string into the smallest
// currency unit, e.g. "19.99" -> 1999. Uses decimal arithmetic so
// amounts like 19.99 survive the x100 exactly; sub-cent precision is
// rounded half away from zero. Currencies whose minor unit is not 1/100
// are out of scope.
func ToMinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be greater than 0, got %q", amount)
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
