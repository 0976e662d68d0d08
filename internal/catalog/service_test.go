package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/validation"
)

type fakeRepo struct {
	listFunc     func(ctx context.Context) ([]Product, error)
	getFunc      func(ctx context.Context, id int64) (Product, error)
	createFunc   func(ctx context.Context, p *Product) error
	updateFunc   func(ctx context.Context, p *Product) error
	deleteFunc   func(ctx context.Context, id int64) error
	setStockFunc func(ctx context.Context, id int64, stock int) error
}

func (f *fakeRepo) List(ctx context.Context) ([]Product, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Product, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, id)
	}
	return Product{}, ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, p *Product) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, p)
	}
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Product) error {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, p)
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return nil
}

func (f *fakeRepo) SetStock(ctx context.Context, id int64, stock int) error {
	if f.setStockFunc != nil {
		return f.setStockFunc(ctx, id, stock)
	}
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, validation.New(), zap.NewNop())
}

func TestService_GetNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.Get(context.Background(), 4)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestService_GetRepositoryError(t *testing.T) {
	svc := newTestService(&fakeRepo{
		getFunc: func(ctx context.Context, id int64) (Product, error) { return Product{}, errors.New("db down") },
	})

	_, err := svc.Get(context.Background(), 4)
	assert.True(t, apperr.IsKind(err, apperr.KindGeneral))
}

func TestService_Create(t *testing.T) {
	var stored *Product
	svc := newTestService(&fakeRepo{
		createFunc: func(ctx context.Context, p *Product) error {
			p.ID = 11
			stored = p
			return nil
		},
	})

	p, err := svc.Create(context.Background(), ProductInput{Name: "Tote", Price: decimal.RequireFromString("15.00"), Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(11), p.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "Tote", stored.Name)
}

func TestService_CreateValidation(t *testing.T) {
	called := false
	svc := newTestService(&fakeRepo{
		createFunc: func(ctx context.Context, p *Product) error { called = true; return nil },
	})

	_, err := svc.Create(context.Background(), ProductInput{Name: "", Price: decimal.NewFromInt(-1), Stock: 2000})
	require.Error(t, err)

	e := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "name")
	assert.Contains(t, e.Fields, "price")
	assert.Contains(t, e.Fields, "stock")
	assert.False(t, called)
}

func TestService_UpdateAndDeleteMissing(t *testing.T) {
	svc := newTestService(&fakeRepo{
		updateFunc: func(ctx context.Context, p *Product) error { return ErrNotFound },
		deleteFunc: func(ctx context.Context, id int64) error { return ErrNotFound },
	})

	_, err := svc.Update(context.Background(), 5, ProductInput{Name: "Cap", Price: decimal.NewFromInt(3)})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = svc.Delete(context.Background(), 5)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestService_DeleteProductWithOrders(t *testing.T) {
	svc := newTestService(&fakeRepo{
		deleteFunc: func(ctx context.Context, id int64) error { return ErrInUse },
	})

	err := svc.Delete(context.Background(), 5)
	assert.True(t, apperr.IsKind(err, apperr.KindBusinessRule))
}

func TestService_AdjustStock(t *testing.T) {
	tests := map[string]struct {
		stock    int
		repoErr  error
		wantKind apperr.Kind
		wantErr  bool
	}{
		"ok":        {stock: 10},
		"negative":  {stock: -1, wantErr: true, wantKind: apperr.KindValidation},
		"too large": {stock: 1001, wantErr: true, wantKind: apperr.KindValidation},
		"missing":   {stock: 1, repoErr: ErrNotFound, wantErr: true, wantKind: apperr.KindNotFound},
		"db error":  {stock: 1, repoErr: errors.New("boom"), wantErr: true, wantKind: apperr.KindGeneral},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(&fakeRepo{
				setStockFunc: func(ctx context.Context, id int64, stock int) error { return tc.repoErr },
			})

			err := svc.AdjustStock(context.Background(), 1, tc.stock)
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, tc.wantKind))
		})
	}
}
