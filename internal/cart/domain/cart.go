package domain

import "errors"

var (
	ErrOutOfStock   = errors.New("product is out of stock")
	ErrAtStockLimit = errors.New("cart line already at stock limit")
)

type Money struct {
	Currency string
	Amount   int64
}

// Product is the display and stock data a caller reads from the catalog
// to seed AddItem.
type Product struct {
	ID        string
	Name      string
	UnitPrice Money
	ImageURL  string
	Stock     int
}

// Line holds 1 <= Quantity <= StockCeiling at all times.
type Line struct {
	ID           string
	Name         string
	UnitPrice    Money
	ImageURL     string
	StockCeiling int
	Quantity     int
}

func (l Line) Total() Money {
	return Money{Currency: l.UnitPrice.Currency, Amount: l.UnitPrice.Amount * int64(l.Quantity)}
}

// Cart is an ordered set of lines. Every method returns a new Cart and
// leaves the receiver untouched.
type Cart struct {
	Lines []Line
}

func (c Cart) index(id string) int {
	for i, l := range c.Lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	if len(c.Lines) == 0 {
		return Cart{}
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

func (c Cart) Line(id string) (Line, bool) {
	i := c.index(id)
	if i < 0 {
		return Line{}, false
	}
	return c.Lines[i], true
}

// AddItem puts one unit of p into the cart. A zero stock fails with
// ErrOutOfStock. When the line is already at its ceiling the cart comes back
// unchanged together with ErrAtStockLimit.
func (c Cart) AddItem(p Product) (Cart, error) {
	if p.Stock <= 0 {
		return c, ErrOutOfStock
	}

	i := c.index(p.ID)
	if i < 0 {
		out := c.clone()
		out.Lines = append(out.Lines, Line{
			ID:           p.ID,
			Name:         p.Name,
			UnitPrice:    p.UnitPrice,
			ImageURL:     p.ImageURL,
			StockCeiling: p.Stock,
			Quantity:     1,
		})
		return out, nil
	}

	cur := c.Lines[i]
	if cur.Quantity == p.Stock {
		return c, ErrAtStockLimit
	}

	out := c.clone()
	line := &out.Lines[i]
	line.Name = p.Name
	line.UnitPrice = p.UnitPrice
	line.ImageURL = p.ImageURL
	line.StockCeiling = p.Stock
	if cur.Quantity > p.Stock {
		// stock dropped below what is already in the cart
		line.Quantity = p.Stock
		return out, ErrAtStockLimit
	}
	line.Quantity = cur.Quantity + 1
	return out, nil
}

// UpdateQuantity sets the quantity of line id, clamped to its stock ceiling.
// Anything below one removes the line. Unknown ids are ignored.
func (c Cart) UpdateQuantity(id string, quantity int) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	if quantity < 1 {
		return c.RemoveItem(id)
	}

	out := c.clone()
	line := &out.Lines[i]
	line.Quantity = min(quantity, line.StockCeiling)
	return out
}

func (c Cart) RemoveItem(id string) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	lines := make([]Line, 0, len(c.Lines)-1)
	lines = append(lines, c.Lines[:i]...)
	lines = append(lines, c.Lines[i+1:]...)
	if len(lines) == 0 {
		return Cart{}
	}
	return Cart{Lines: lines}
}

func (c Cart) Clear() Cart {
	return Cart{}
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) TotalItems() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums the line totals in minor units. The currency is taken from
// the first line; an empty cart yields the zero Money.
func (c Cart) TotalPrice() Money {
	if len(c.Lines) == 0 {
		return Money{}
	}
	total := Money{Currency: c.Lines[0].UnitPrice.Currency}
	for _, l := range c.Lines {
		total.Amount += l.Total().Amount
	}
	return total
}
