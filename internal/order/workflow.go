package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/cart"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/logging"
)

const notifyTimeout = 15 * time.Second

type Validator interface {
	Struct(s any) error
}

type Carts interface {
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// Notifier sends the order confirmation to the customer.
type Notifier interface {
	OrderConfirmation(ctx context.Context, c Confirmation) error
}

// Publisher announces a placed checkout to other systems.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, c Confirmation) error
}

type Recorder interface {
	CheckoutSucceeded(orders int)
	CheckoutFailed(reason string)
}

type Deps struct {
	Repo      Repository
	Carts     Carts
	Validate  Validator
	Notifier  Notifier
	Publisher Publisher
	Recorder  Recorder
	Logger    *zap.Logger
}

// Workflow turns a session cart into persisted orders.
type Workflow struct {
	repo      Repository
	carts     Carts
	validate  Validator
	notifier  Notifier
	publisher Publisher
	recorder  Recorder
	logger    *zap.Logger

	dispatch func(func())
	now      func() time.Time
	newToken func() string
}

func NewWorkflow(d Deps) *Workflow {
	w := &Workflow{
		repo:      d.Repo,
		carts:     d.Carts,
		validate:  d.Validate,
		notifier:  d.Notifier,
		publisher: d.Publisher,
		recorder:  d.Recorder,
		logger:    d.Logger.Named("order"),
		dispatch:  func(f func()) { go f() },
		now:       time.Now,
		newToken:  uuid.NewString,
	}
	if w.recorder == nil {
		w.recorder = nopRecorder{}
	}
	return w
}

// Preview prices the session cart for the checkout page. Prices are the ones
// captured when the lines were added.
func (w *Workflow) Preview(ctx context.Context, sessionID string) (Summary, error) {
	c, err := w.carts.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if c.IsEmpty() {
		return Summary{}, apperr.Validation("Cart is empty. Cannot proceed to checkout.")
	}
	req := CheckoutRequest{Items: itemsFromCart(c)}
	return Summary{
		Items:         req.Items,
		SubTotal:      req.SubTotal(),
		ShippingFee:   ShippingFee,
		GrandTotal:    req.GrandTotal(),
		PaymentMethod: DefaultPaymentMethod,
	}, nil
}

// Place validates the request and persists it atomically. Either every item
// becomes a pending order and its stock is decremented, or nothing changes.
func (w *Workflow) Place(ctx context.Context, userID string, req CheckoutRequest) ([]Order, error) {
	if len(req.Items) == 0 {
		w.recorder.CheckoutFailed("empty_cart")
		return nil, apperr.Validation("Cart is empty. Cannot process checkout.")
	}
	if err := w.validate.Struct(req.Shipping); err != nil {
		w.recorder.CheckoutFailed("validation")
		return nil, err
	}
	fields := map[string][]string{}
	for i, it := range req.Items {
		if it.Quantity <= 0 {
			key := fmt.Sprintf("items[%d].quantity", i)
			fields[key] = append(fields[key], "must be greater than 0")
		}
	}
	if len(fields) > 0 {
		w.recorder.CheckoutFailed("validation")
		return nil, apperr.ValidationFields(fields)
	}

	orders, err := w.repo.PlaceOrders(ctx, userID, req.Items)
	if err != nil {
		return nil, w.placeError(err)
	}

	w.recorder.CheckoutSucceeded(len(orders))
	w.logger.Info("checkout placed", logging.Success(),
		zap.String("userId", userID), zap.Int("orders", len(orders)))
	return orders, nil
}

func (w *Workflow) placeError(err error) error {
	var (
		missing  *ProductNotFoundError
		shortage *InsufficientStockError
	)
	switch {
	case errors.As(err, &missing):
		w.recorder.CheckoutFailed("product_missing")
		w.logger.Warn("checkout references missing product", zap.Int64("productId", missing.ProductID))
		return apperr.NotFound("Product", missing.ProductID)
	case errors.As(err, &shortage):
		w.recorder.CheckoutFailed("insufficient_stock")
		w.logger.Warn("checkout rejected for stock",
			zap.Int64("productId", shortage.ProductID),
			zap.Int("available", shortage.Available),
			zap.Int("requested", shortage.Requested))
		return apperr.BusinessRule(fmt.Sprintf("Insufficient stock for product '%s'. Available: %d, Requested: %d",
			shortage.ProductName, shortage.Available, shortage.Requested))
	default:
		w.recorder.CheckoutFailed("error")
		w.logger.Error("checkout failed", zap.Error(err))
		return apperr.General("An error occurred while processing your order. Please try again.", err)
	}
}

// Process checks out the session cart. On success the cart is cleared, the
// confirmation is mailed in the background and an OrderPlaced event is
// published. Failures of those follow-ups never fail the checkout.
func (w *Workflow) Process(ctx context.Context, sessionID, userID string, shipping ShippingDetails) (Confirmation, error) {
	c, err := w.carts.Get(ctx, sessionID)
	if err != nil {
		return Confirmation{}, err
	}

	orders, err := w.Place(ctx, userID, CheckoutRequest{Shipping: shipping, Items: itemsFromCart(c)})
	if err != nil {
		return Confirmation{}, err
	}

	conf := newConfirmation(w.newToken(), userID, orders, shipping, w.now().UTC())

	if err := w.carts.Clear(ctx, sessionID); err != nil {
		w.logger.Warn("clear cart after checkout failed", zap.String("token", conf.Token), zap.Error(err))
	}

	w.notify(ctx, conf)

	if w.publisher != nil {
		if err := w.publisher.PublishOrderPlaced(ctx, conf); err != nil {
			w.logger.Warn("publish order placed failed", zap.String("token", conf.Token), zap.Error(err))
		}
	}
	return conf, nil
}

func (w *Workflow) notify(ctx context.Context, conf Confirmation) {
	if w.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	w.dispatch(func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		if err := w.notifier.OrderConfirmation(ctx, conf); err != nil {
			w.logger.Warn("order confirmation not sent", zap.String("token", conf.Token), zap.Error(err))
			return
		}
		w.logger.Debug("order confirmation sent", zap.String("token", conf.Token))
	})
}

func (w *Workflow) ListAll(ctx context.Context) ([]Order, error) {
	orders, err := w.repo.ListAll(ctx)
	if err != nil {
		w.logger.Error("list orders failed", zap.Error(err))
		return nil, apperr.General("failed to load orders", err)
	}
	return orders, nil
}

func (w *Workflow) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("")
	}
	orders, err := w.repo.ListByUser(ctx, userID)
	if err != nil {
		w.logger.Error("list user orders failed", zap.String("userId", userID), zap.Error(err))
		return nil, apperr.General("failed to load orders", err)
	}
	return orders, nil
}

func (w *Workflow) Get(ctx context.Context, id int64) (Order, error) {
	o, err := w.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, apperr.NotFound("Order", id)
		}
		w.logger.Error("get order failed", zap.Int64("orderId", id), zap.Error(err))
		return Order{}, apperr.General("failed to load order", err)
	}
	return o, nil
}

// UpdateStatus rejects unknown statuses before touching storage.
func (w *Workflow) UpdateStatus(ctx context.Context, id int64, status string) error {
	st, ok := ParseStatus(status)
	if !ok {
		return apperr.ValidationFields(map[string][]string{
			"status": {fmt.Sprintf("'%s' is not a valid order status", status)},
		})
	}
	if err := w.repo.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Order", id)
		}
		w.logger.Error("update order status failed", zap.Int64("orderId", id), zap.Error(err))
		return apperr.General("failed to update order status", err)
	}
	w.logger.Info("order status updated", logging.Success(), zap.Int64("orderId", id), zap.String("status", string(st)))
	return nil
}

func itemsFromCart(c cart.Cart) []Item {
	items := make([]Item, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, Item{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.Price,
			Size:        l.Size,
		})
	}
	return items
}

type nopRecorder struct{}

func (nopRecorder) CheckoutSucceeded(int) {}
func (nopRecorder) CheckoutFailed(string) {}
