package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/logging"
)

type Validator interface {
	Struct(s any) error
}

// Service holds the product business rules on top of the Repository.
type Service struct {
	repo     Repository
	validate Validator
	logger   *zap.Logger
}

func NewService(repo Repository, validate Validator, logger *zap.Logger) *Service {
	return &Service{repo: repo, validate: validate, logger: logger.Named("catalog")}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list products failed", zap.Error(err))
		return nil, apperr.General("failed to load products", err)
	}
	s.logger.Debug("products listed", zap.Int("count", len(products)))
	return products, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Warn("product not found", zap.Int64("productId", id))
			return Product{}, apperr.NotFound("Product", id)
		}
		s.logger.Error("get product failed", zap.Int64("productId", id), zap.Error(err))
		return Product{}, apperr.General("failed to load product", err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := s.validate.Struct(in); err != nil {
		s.logger.Warn("product validation failed", zap.Error(err))
		return Product{}, err
	}

	var p Product
	in.apply(&p)
	if err := s.repo.Create(ctx, &p); err != nil {
		s.logger.Error("create product failed", zap.String("name", in.Name), zap.Error(err))
		return Product{}, apperr.General("failed to create product", err)
	}
	s.logger.Info("product created", zap.Int64("productId", p.ID), logging.Success())
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	if err := s.validate.Struct(in); err != nil {
		return Product{}, err
	}

	p := Product{ID: id}
	in.apply(&p)
	if err := s.repo.Update(ctx, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, apperr.NotFound("Product", id)
		}
		s.logger.Error("update product failed", zap.Int64("productId", id), zap.Error(err))
		return Product{}, apperr.General("failed to update product", err)
	}
	s.logger.Info("product updated", zap.Int64("productId", id), logging.Success())
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Product", id)
		}
		if errors.Is(err, ErrInUse) {
			return apperr.BusinessRule("Product has orders and cannot be deleted. Set its stock to 0 instead.")
		}
		s.logger.Error("delete product failed", zap.Int64("productId", id), zap.Error(err))
		return apperr.General("failed to delete product", err)
	}
	s.logger.Info("product deleted", zap.Int64("productId", id), logging.Success())
	return nil
}

// AdjustStock sets the stock ledger for a product to an absolute value.
func (s *Service) AdjustStock(ctx context.Context, id int64, stock int) error {
	if stock < 0 || stock > 1000 {
		return apperr.ValidationFields(map[string][]string{"stock": {"must be between 0 and 1000"}})
	}
	if err := s.repo.SetStock(ctx, id, stock); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Product", id)
		}
		s.logger.Error("adjust stock failed", zap.Int64("productId", id), zap.Error(err))
		return apperr.General("failed to adjust stock", err)
	}
	s.logger.Info("stock adjusted", zap.Int64("productId", id), zap.Int("stock", stock))
	return nil
}
