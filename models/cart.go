package models

import (
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
)

// FeePolicy configures the cart totals. The zero value charges no
// fees at all.
type FeePolicy struct {
	// ServiceFeePercent of the subtotal, rounded to the nearest whole
	// currency unit.
	ServiceFeePercent decimal.Decimal
	// DeliveryFee charged while the subtotal is below
	// FreeDeliveryThreshold.
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

// DefaultFeePolicy is the production default: 2% service fee, 5000
// delivery fee waived from a 50000 subtotal.
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		ServiceFeePercent:     decimal.NewFromInt(2),
		DeliveryFee:           decimal.NewFromInt(5000),
		FreeDeliveryThreshold: decimal.NewFromInt(50000),
	}
}

// CartSaver persists the cart collection. Saves happen after every
// mutation and are best-effort; loads report absence with false.
type CartSaver interface {
	SaveCart(items []CartItem)
	LoadCart() ([]CartItem, bool)
}

// Cart holds the in-progress order as an ordered list of lines merged
// by LineKey. All methods are safe for concurrent use.
type Cart struct {
	mu     sync.Mutex
	lines  []CartItem
	policy FeePolicy
	saver  CartSaver
	log    *slog.Logger
}

func NewCart(policy FeePolicy, saver CartSaver, log *slog.Logger) *Cart {
	return &Cart{policy: policy, saver: saver, log: log}
}

// Load rehydrates the cart persisted by a previous session. Call it
// once at startup, before the cart is handed out.
func (c *Cart) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lines, ok := c.saver.LoadCart(); ok {
		c.lines = lines
		c.log.Debug("cart rehydrated", "lines", len(lines))
	}
}

// AddItem adds one unit of the item, merged into the existing line
// when the same item+variant pair is already present. Price and image
// are snapshotted from the variant when one is selected, otherwise
// from the base item.
func (c *Cart) AddItem(item MenuItem, variant *MenuItemVariant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cartKey(item, variant)
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Quantity++
			c.persist()
			return
		}
	}

	line := CartItem{
		ItemID:     item.ID,
		Name:       item.Name,
		Image:      item.Image,
		Price:      item.Price,
		Quantity:   1,
		IsOriginal: true,
	}
	if variant != nil {
		v := *variant
		line.SelectedVariant = &v
		line.IsOriginal = false
		line.Price = v.Price
		if v.Image != "" {
			line.Image = v.Image
		}
	}
	c.lines = append(c.lines, line)
	c.persist()
}

// RemoveItem removes one unit of the matching line, dropping the line
// entirely when its quantity reaches zero. Unknown keys are ignored.
func (c *Cart) RemoveItem(item MenuItem, variant *MenuItemVariant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cartKey(item, variant)
	for i := range c.lines {
		if c.lines[i].Key() != key {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		c.persist()
		return
	}
}

// RemoveLine drops the line matching the cart item's identity,
// regardless of quantity.
func (c *Cart) RemoveLine(line CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := line.Key()
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.persist()
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem(nil), c.lines...)
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal sums the snapshotted line prices times quantities.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotal()
}

// ServiceFee is the configured percentage of the subtotal, rounded to
// the nearest whole currency unit.
func (c *Cart) ServiceFee() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serviceFee(c.subtotal())
}

// DeliveryFee is the configured flat fee, waived for an empty cart
// and above the free-delivery threshold.
func (c *Cart) DeliveryFee() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliveryFee(c.subtotal())
}

// FinalTotal is subtotal plus both fees.
func (c *Cart) FinalTotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	subtotal := c.subtotal()
	return subtotal.Add(c.serviceFee(subtotal)).Add(c.deliveryFee(subtotal))
}

func (c *Cart) subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

func (c *Cart) serviceFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(c.policy.ServiceFeePercent).Div(decimal.NewFromInt(100)).Round(0)
}

func (c *Cart) deliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() || c.policy.DeliveryFee.IsZero() {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(c.policy.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return c.policy.DeliveryFee
}

// persist writes the whole collection after a mutation. Callers hold
// the mutex.
func (c *Cart) persist() {
	c.saver.SaveCart(append([]CartItem(nil), c.lines...))
}

func cartKey(item MenuItem, variant *MenuItemVariant) LineKey {
	if variant != nil {
		return VariantLine(item.ID, variant.ID)
	}
	return OriginalLine(item.ID)
}
