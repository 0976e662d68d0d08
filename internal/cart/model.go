package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NoSize is the size label stored for products sold without sizes.
const NoSize = "-"

// Line is one product+size entry. Name, price and image are copied from the
// catalog when the line is created and are not refreshed afterwards.
type Line struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Size        string          `json:"size"`
	ImageURL    string          `json:"imageUrl"`
}

func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Lines []Line `json:"items"`
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) clone() Cart {
	if c.Lines == nil {
		return Cart{Lines: []Line{}}
	}
	return Cart{Lines: append([]Line(nil), c.Lines...)}
}

func (c Cart) indexOf(productID int64, size string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID && l.Size == size {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

// LineView is a cart line with its computed total, for responses.
type LineView struct {
	Line
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type View struct {
	Items     []LineView      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func (c Cart) View() View {
	items := make([]LineView, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, LineView{Line: l, TotalPrice: l.Total()})
	}
	return View{Items: items, ItemCount: c.ItemCount(), Subtotal: c.Subtotal()}
}

func normalizeSize(size string) string {
	size = strings.TrimSpace(size)
	if size == "" {
		return NoSize
	}
	return size
}
