package pos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/store"
)

// Cart manages the active sale. Every mutation is written through to the
// local store, so the cart survives a full restart of the register.
type Cart struct {
	store store.Store
}

// NewCart creates a cart over the local store
func NewCart(st store.Store) *Cart {
	return &Cart{store: st}
}

// Summary is the computed cart footer
type Summary struct {
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// Items returns the active cart lines in insertion order
func (c *Cart) Items() ([]models.CartItem, error) {
	return c.store.GetCart()
}

// Add puts a product into the cart. An existing line for the same product
// gets its quantity bumped; a new line snapshots the product and fixes the
// unit price at add time.
func (c *Cart) Add(p models.Product, quantity int) (models.CartItem, error) {
	if quantity <= 0 {
		return models.CartItem{}, ErrQuantityInvalid
	}

	items, err := c.store.GetCart()
	if err != nil {
		return models.CartItem{}, err
	}

	for i, item := range items {
		if item.ProductID == p.ID {
			items[i].Quantity += quantity
			items[i].TotalPrice = float64(items[i].Quantity) * items[i].UnitPrice
			if err := c.store.SaveCart(items); err != nil {
				return models.CartItem{}, err
			}
			return items[i], nil
		}
	}

	line := models.CartItem{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Quantity:  quantity,
		UnitPrice: p.PriceValue(),
		CreatedAt: time.Now().UTC(),
	}
	line.TotalPrice = float64(line.Quantity) * line.UnitPrice
	if err := line.SetProduct(p); err != nil {
		return models.CartItem{}, fmt.Errorf("pos: snapshot product: %w", err)
	}

	items = append(items, line)
	if err := c.store.SaveCart(items); err != nil {
		return models.CartItem{}, err
	}
	return line, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(itemID)
	}

	items, err := c.store.GetCart()
	if err != nil {
		return err
	}

	for i, item := range items {
		if item.ID == itemID {
			items[i].Quantity = quantity
			items[i].TotalPrice = float64(quantity) * item.UnitPrice
			return c.store.SaveCart(items)
		}
	}
	return store.ErrNotFound
}

// Remove drops one line from the cart
func (c *Cart) Remove(itemID string) error {
	items, err := c.store.GetCart()
	if err != nil {
		return err
	}

	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return store.ErrNotFound
	}
	return c.store.SaveCart(kept)
}

// Clear empties the active cart
func (c *Cart) Clear() error {
	return c.store.ClearCart()
}

// Replace swaps the whole cart content (used when restoring a held sale)
func (c *Cart) Replace(items []models.CartItem) error {
	return c.store.SaveCart(items)
}

// Summary computes the cart footer with the given tax rate (percent)
func (c *Cart) Summary(taxRate float64) (Summary, error) {
	items, err := c.store.GetCart()
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, item := range items {
		s.Subtotal += item.TotalPrice
		s.ItemCount += item.Quantity
	}
	s.Tax = round2(s.Subtotal * taxRate / 100)
	s.Total = s.Subtotal + s.Tax
	return s, nil
}
