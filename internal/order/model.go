package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultPaymentMethod = "CashOnDelivery"

// ShippingFee is the flat fee added to every checkout.
var ShippingFee = decimal.RequireFromString("3.00")

// Order is one persisted row per checked-out cart line.
type Order struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"userId,omitempty"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Item struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Size        string          `json:"size"`
}

func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ShippingDetails struct {
	FullName      string `json:"shippingFullName" validate:"notblank,max=100"`
	Address       string `json:"shippingAddress" validate:"notblank,max=250"`
	PhoneNumber   string `json:"shippingPhoneNumber" validate:"required,phone"`
	Email         string `json:"shippingEmail" validate:"omitempty,email"`
	Notes         string `json:"notes" validate:"max=500"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=CashOnDelivery"`
}

type CheckoutRequest struct {
	Shipping ShippingDetails `json:"shipping"`
	Items    []Item          `json:"items"`
}

func (r CheckoutRequest) SubTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Total())
	}
	return total
}

// GrandTotal is always derived, never stored.
func (r CheckoutRequest) GrandTotal() decimal.Decimal {
	return r.SubTotal().Add(ShippingFee)
}

// Summary is what the checkout page shows before the order is placed.
type Summary struct {
	Items         []Item          `json:"items"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	ShippingFee   decimal.Decimal `json:"shippingFee"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	PaymentMethod string          `json:"paymentMethod"`
}

type Confirmation struct {
	Token         string          `json:"confirmationToken"`
	UserID        string          `json:"userId,omitempty"`
	Orders        []Order         `json:"orders"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	ShippingFee   decimal.Decimal `json:"shippingFee"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	PaymentMethod string          `json:"paymentMethod"`
	PlacedAt      time.Time       `json:"placedAt"`

	Shipping ShippingDetails `json:"-"`
}

func newConfirmation(token, userID string, orders []Order, shipping ShippingDetails, placedAt time.Time) Confirmation {
	sub := decimal.Zero
	for _, o := range orders {
		sub = sub.Add(o.TotalPrice)
	}
	method := shipping.PaymentMethod
	if method == "" {
		method = DefaultPaymentMethod
	}
	return Confirmation{
		Token:         token,
		UserID:        userID,
		Orders:        orders,
		SubTotal:      sub,
		ShippingFee:   ShippingFee,
		GrandTotal:    sub.Add(ShippingFee),
		PaymentMethod: method,
		PlacedAt:      placedAt,
		Shipping:      shipping,
	}
}
