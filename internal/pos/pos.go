// Package pos holds the register-side sale flow: the persistent active cart,
// the held-sale manager, and checkout.
package pos

import (
	"errors"
	"math"
	"strconv"

	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/store"
)

// ErrEmptyCart rejects hold/checkout on a cart with no items
var ErrEmptyCart = errors.New("pos: cart is empty")

// ErrQuantityInvalid rejects non-positive quantities on add
var ErrQuantityInvalid = errors.New("pos: quantity must be positive")

// FormatAmount renders a decimal-string amount with minimal digits ("200",
// "200.5"), matching how subtotals appear on the wire
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMoney renders a two-decimal amount ("34.00") as shown on receipts
func FormatMoney(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// StoreSettingsFor loads the settings:store blob, falling back to defaults
// when none has been saved yet
func StoreSettingsFor(st store.Store) models.StoreSettings {
	var s models.StoreSettings
	if err := st.GetSetting(models.SettingStoreInfo, &s); err != nil {
		return models.DefaultStoreSettings()
	}
	if s.TaxRate < 0 {
		s.TaxRate = 0
	}
	return s
}
