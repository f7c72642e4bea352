// Package cart holds a customer's in-progress selection as a plain
// serializable value. Totals and counts are always derived from the items,
// never stored, so they cannot drift.
package cart

// Item pairs a product snapshot with a quantity. Price is captured at
// add-time; catalog edits do not reach carts already holding the item.
type Item struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is a pure reducer over an ordered item list.
type Cart struct {
	Items []Item `json:"items"`
}

// Add increments the quantity when the product is already present,
// otherwise appends it with quantity 1.
func (c *Cart) Add(productID int64, name string, price float64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  1,
	})
}

// SetQuantity pins an item's quantity. Anything below 1 removes the entry;
// quantities under 1 are never kept.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the entry for the product, if any.
func (c *Cart) Remove(productID int64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Total recomputes the cart value from scratch on every call.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the number of units across all entries.
func (c Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
