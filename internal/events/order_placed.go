package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/order"
)

const (
	EventTypeOrderPlaced = "OrderPlaced"
	orderPlacedSchema    = "portal://events/order-placed/v1"
)

type OrderPlacedPayload struct {
	ConfirmationToken string       `json:"confirmationToken"`
	UserID            string       `json:"userId,omitempty"`
	Lines             []PlacedLine `json:"lines"`
	SubTotal          string       `json:"subTotal"`
	ShippingFee       string       `json:"shippingFee"`
	GrandTotal        string       `json:"grandTotal"`
	PaymentMethod     string       `json:"paymentMethod"`
	PlacedAt          time.Time    `json:"placedAt"`
}

// PlacedLine carries money as decimal strings so consumers never see float rounding.
type PlacedLine struct {
	OrderID    int64  `json:"orderId"`
	ProductID  int64  `json:"productId"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"totalPrice"`
}

type OrderPlacedEvent = EventEnvelope[OrderPlacedPayload]

func orderPlacedPayload(c order.Confirmation) OrderPlacedPayload {
	p := OrderPlacedPayload{
		ConfirmationToken: c.Token,
		UserID:            c.UserID,
		Lines:             make([]PlacedLine, 0, len(c.Orders)),
		SubTotal:          c.SubTotal.StringFixed(2),
		ShippingFee:       c.ShippingFee.StringFixed(2),
		GrandTotal:        c.GrandTotal.StringFixed(2),
		PaymentMethod:     c.PaymentMethod,
		PlacedAt:          c.PlacedAt,
	}
	for _, o := range c.Orders {
		p.Lines = append(p.Lines, PlacedLine{
			OrderID:    o.ID,
			ProductID:  o.ProductID,
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice.StringFixed(2),
		})
	}
	return p
}

func newOrderPlacedEvent(meta EventMeta, seq int64, producer string, payload OrderPlacedPayload, occurredAt time.Time) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventName:     EventTypeOrderPlaced,
		EventVersion:  1,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  meta.PartitionKey,
		Sequence:      seq,
		OccurredAt:    occurredAt,
		Schema:        orderPlacedSchema,
		Payload:       payload,
	}
}
