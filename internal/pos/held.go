package pos

import (
	"sort"
	"strconv"
	"time"

	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/store"
)

// HeldSales parks in-progress sales so a cashier can serve the next customer
// and resume later. The list is durable: held sales survive a full restart.
type HeldSales struct {
	store store.Store
	cart  *Cart
}

// NewHeldSales creates a held-sale manager sharing the active cart
func NewHeldSales(st store.Store, cart *Cart) *HeldSales {
	return &HeldSales{store: st, cart: cart}
}

func (h *HeldSales) load() ([]models.HeldSale, error) {
	var sales []models.HeldSale
	err := h.store.GetSetting(models.SettingHeldSales, &sales)
	if err == store.ErrNotFound {
		return nil, nil
	}
	return sales, err
}

func (h *HeldSales) save(sales []models.HeldSale) error {
	return h.store.PutSetting(models.SettingHeldSales, sales)
}

// Hold parks the active cart as a named snapshot and clears it. Rejects an
// empty cart with ErrEmptyCart.
func (h *HeldSales) Hold(customerID *string, paymentMethod string) (models.HeldSale, error) {
	items, err := h.cart.Items()
	if err != nil {
		return models.HeldSale{}, err
	}
	if len(items) == 0 {
		return models.HeldSale{}, ErrEmptyCart
	}

	sales, err := h.load()
	if err != nil {
		return models.HeldSale{}, err
	}

	now := time.Now().UTC()
	sale := models.HeldSale{
		ID:            strconv.FormatInt(now.UnixMilli(), 10),
		CreatedAt:     now,
		Items:         items,
		CustomerID:    customerID,
		PaymentMethod: paymentMethod,
	}

	sales = append(sales, sale)
	if err := h.save(sales); err != nil {
		return models.HeldSale{}, err
	}

	// Holding a sale clears the active cart; a sale is never both active
	// and held
	if err := h.cart.Clear(); err != nil {
		return models.HeldSale{}, err
	}
	return sale, nil
}

// List returns all held sales, newest first
func (h *HeldSales) List() ([]models.HeldSale, error) {
	sales, err := h.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].ID > sales[j].ID })
	return sales, nil
}

// Restore removes a held sale and reinstates it as the active cart. A held
// sale can be restored at most once; a second call returns ErrNotFound.
func (h *HeldSales) Restore(id string) (models.HeldSale, error) {
	sales, err := h.load()
	if err != nil {
		return models.HeldSale{}, err
	}

	idx := -1
	for i, s := range sales {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.HeldSale{}, store.ErrNotFound
	}

	restored := sales[idx]
	sales = append(sales[:idx], sales[idx+1:]...)

	if err := h.save(sales); err != nil {
		return models.HeldSale{}, err
	}
	if err := h.cart.Replace(restored.Items); err != nil {
		return models.HeldSale{}, err
	}
	return restored, nil
}

// Discard permanently removes a held sale without restoring it
func (h *HeldSales) Discard(id string) error {
	sales, err := h.load()
	if err != nil {
		return err
	}

	kept := sales[:0]
	found := false
	for _, s := range sales {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return store.ErrNotFound
	}
	return h.save(kept)
}
