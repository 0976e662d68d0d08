package cart

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/catalog"
)

const MaxLineQuantity = 100

type ProductLookup interface {
	Get(ctx context.Context, id int64) (catalog.Product, error)
}

// Service is the cart API. Every call names the session it acts on; the
// session's cart is read, modified and written back as one blob, so the last
// writer for a session wins.
type Service struct {
	store    Store
	products ProductLookup
	logger   *zap.Logger
}

func NewService(store Store, products ProductLookup, logger *zap.Logger) *Service {
	return &Service{store: store, products: products, logger: logger.Named("cart")}
}

func (s *Service) Get(ctx context.Context, sessionID string) (Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return Cart{}, err
	}
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.Error("load cart failed", zap.Error(err))
		return Cart{}, apperr.General("failed to load cart", err)
	}
	return c, nil
}

// Add puts quantity units of a product in the cart. A line with the same
// product and size is incremented; otherwise a new line is created from the
// current catalog data.
func (s *Service) Add(ctx context.Context, sessionID string, productID int64, quantity int, size string) (Cart, error) {
	if quantity < 1 || quantity > MaxLineQuantity {
		return Cart{}, apperr.ValidationFields(map[string][]string{"quantity": {"must be between 1 and 100"}})
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return Cart{}, err
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	size = normalizeSize(size)
	if i := c.indexOf(productID, size); i >= 0 {
		c.Lines[i].Quantity += quantity
	} else {
		c.Lines = append(c.Lines, Line{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    quantity,
			Size:        size,
			ImageURL:    product.ImageURL,
		})
	}

	if err := s.save(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	s.logger.Info("product added to cart", zap.Int64("productId", productID), zap.String("size", size), zap.Int("quantity", quantity))
	return c, nil
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, size string, quantity int) (Cart, error) {
	if quantity > MaxLineQuantity {
		return Cart{}, apperr.ValidationFields(map[string][]string{"quantity": {"must be at most 100"}})
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	i := c.indexOf(productID, normalizeSize(size))
	if i < 0 {
		return c, nil
	}
	if quantity > 0 {
		c.Lines[i].Quantity = quantity
	} else {
		c.removeAt(i)
	}

	if err := s.save(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) Remove(ctx context.Context, sessionID string, productID int64, size string) (Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	i := c.indexOf(productID, normalizeSize(size))
	if i < 0 {
		return c, nil
	}
	c.removeAt(i)

	if err := s.save(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Error("clear cart failed", zap.Error(err))
		return apperr.General("failed to clear cart", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, sessionID string, c Cart) error {
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		s.logger.Error("save cart failed", zap.Error(err))
		return apperr.General("failed to save cart", err)
	}
	return nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return apperr.Validation("missing session")
	}
	return nil
}
