package domain

// MaxLineQuantity caps a single cart line; larger orders go through staff.
const MaxLineQuantity = 20

type CartLine struct {
	MenuItemID          int64   `json:"menu_item_id"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
	UnitPrice           float64 `json:"unit_price"` // price at time of add; checkout re-prices
}

// Cart is the session-owned set of prospective order lines. It is a plain
// value: the session store round-trips it as JSON and the checkout
// coordinator receives it by value, so nothing here touches storage.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
}

// Add puts a line into the cart. Adding an item already present merges the
// quantities and replaces the special instructions.
func (c *Cart) Add(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == line.MenuItemID {
			c.Lines[i].Quantity = clampQuantity(c.Lines[i].Quantity + line.Quantity)
			c.Lines[i].SpecialInstructions = line.SpecialInstructions
			return
		}
	}
	line.Quantity = clampQuantity(line.Quantity)
	c.Lines = append(c.Lines, line)
}

// SetQuantity updates a line's quantity; zero or negative removes the line.
// Returns false when the item is not in the cart.
func (c *Cart) SetQuantity(menuItemID int64, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			if quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = clampQuantity(quantity)
			}
			return true
		}
	}
	return false
}

func (c *Cart) Remove(menuItemID int64) bool {
	return c.SetQuantity(menuItemID, 0)
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Subtotal uses the prices cached at add time; it is display-only, the
// authoritative total is computed at checkout from the catalog.
func (c Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return RoundCents(sum)
}

func clampQuantity(q int) int {
	if q > MaxLineQuantity {
		return MaxLineQuantity
	}
	if q < 1 {
		return 1
	}
	return q
}
