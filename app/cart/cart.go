// Package cart is the shopper's session-scoped basket. It never touches the
// database; lines hold a snapshot of the product taken when it was added.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/session"
)

const sessionKey = "cart"

// MaxQuantity caps a single line.
const MaxQuantity = 99

// Line is one product in the cart.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price × quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in the order they were first added.
type Cart struct {
	Items []Line `json:"items"`
}

// AddItem adds quantity of p, merging with an existing line. A quantity
// of zero or less is ignored; the line never exceeds MaxQuantity.
func (c *Cart) AddItem(p models.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity = min(c.Items[i].Quantity+quantity, MaxQuantity)
			return
		}
	}
	c.Items = append(c.Items, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  min(quantity, MaxQuantity),
	})
}

// RemoveItem drops the line for productID, if any.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity, capped at MaxQuantity; zero or
// less removes it.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = min(quantity, MaxQuantity)
			return
		}
	}
}

// Total is the sum of line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Items {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Clear() { c.Items = nil }

// Lines returns a copy of the lines.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.Items...)
}

func (c *Cart) Empty() bool { return len(c.Items) == 0 }

// Load reads the cart from the session; a missing cart is empty.
func Load(s *session.Session) *Cart {
	c := &Cart{}
	s.GetJSON(sessionKey, c)
	return c
}

// Store writes c back into the session. The caller saves the session.
func Store(s *session.Session, c *Cart) error {
	if c.Empty() {
		s.Delete(sessionKey)
		return nil
	}
	return s.SetJSON(sessionKey, c)
}
