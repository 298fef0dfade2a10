package pos

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/store"
	possync "github.com/smartpos/smartposgo/internal/sync"
)

// Checkout turns the active cart into a recorded transaction and a queued
// mutation. The local write happens unconditionally; the server learns about
// the sale when the sync engine drains the queue, whether that is immediately
// or after a shift of offline selling.
type Checkout struct {
	store store.Store
	cart  *Cart
}

// NewCheckout creates a checkout service sharing the active cart
func NewCheckout(st store.Store, cart *Cart) *Checkout {
	return &Checkout{store: st, cart: cart}
}

// Complete finalizes the sale: computes totals with the configured tax rate,
// saves the transaction and line items as one atomic local write, decrements
// cached stock, enqueues exactly one transaction mutation, and clears the
// cart. customerID is nil for a walk-in sale.
func (c *Checkout) Complete(userID string, customerID *string, paymentMethod string) (*models.Transaction, []models.TransactionItem, error) {
	items, err := c.cart.Items()
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	settings := StoreSettingsFor(c.store)

	var subtotal float64
	for _, item := range items {
		subtotal += item.TotalPrice
	}
	tax := round2(subtotal * settings.TaxRate / 100)
	total := subtotal + tax

	now := time.Now().UTC()
	txn := models.Transaction{
		ID:                uuid.NewString(),
		TransactionNumber: "TXN-" + strconv.FormatInt(now.UnixMilli(), 10),
		CustomerID:        customerID,
		UserID:            userID,
		Subtotal:          FormatAmount(subtotal),
		Tax:               FormatMoney(tax),
		Total:             FormatMoney(total),
		PaymentMethod:     paymentMethod,
		PaymentStatus:     models.PaymentStatusCompleted,
		Synced:            false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	txnItems := make([]models.TransactionItem, 0, len(items))
	for _, item := range items {
		line := models.TransactionItem{
			ID:            uuid.NewString(),
			TransactionID: txn.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     FormatMoney(item.UnitPrice),
			TotalPrice:    FormatMoney(item.TotalPrice),
			CreatedAt:     now,
		}
		if p, err := item.ProductSnapshot(); err == nil {
			line.ProductName = p.Name
			line.ProductSKU = p.SKU
		}
		txnItems = append(txnItems, line)
	}

	// Transaction plus line items is one atomic unit
	if err := c.store.SaveTransaction(txn, txnItems); err != nil {
		return nil, nil, fmt.Errorf("pos: save transaction: %w", err)
	}

	c.decrementStock(items)

	mutation, err := possync.NewTransactionMutation(txn, txnItems)
	if err != nil {
		return nil, nil, err
	}
	if err := c.store.AddPendingMutation(mutation); err != nil {
		return nil, nil, fmt.Errorf("pos: enqueue transaction: %w", err)
	}

	if err := c.cart.Clear(); err != nil {
		log.Printf("⚠️ Checkout: sale %s recorded but cart not cleared: %v", txn.TransactionNumber, err)
	}

	log.Printf("💰 Sale %s completed: %s (%d line(s), %s)", txn.TransactionNumber, txn.Total, len(txnItems), paymentMethod)
	return &txn, txnItems, nil
}

// decrementStock keeps the cached stock figures honest while offline. The
// server recomputes authoritative stock when the mutation is replayed; the
// next hydration overwrites whatever we guess here.
func (c *Checkout) decrementStock(items []models.CartItem) {
	for _, item := range items {
		p, err := c.store.GetProduct(item.ProductID)
		if err != nil {
			continue
		}
		p.Stock -= item.Quantity
		if err := c.store.PutProduct(*p); err != nil {
			log.Printf("⚠️ Checkout: stock not decremented for %s: %v", item.ProductID, err)
		}
	}
}
