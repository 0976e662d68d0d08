package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"imageUrl"`
	ImageURLBack string          `json:"imageUrlBack"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductInput is the writable part of a product, used for create and update.
type ProductInput struct {
	Name         string          `json:"name" validate:"notblank,max=100"`
	Description  string          `json:"description" validate:"max=500"`
	Price        decimal.Decimal `json:"price" validate:"gte=0,lte=9999"`
	Stock        int             `json:"stock" validate:"gte=0,lte=1000"`
	ImageURL     string          `json:"imageUrl"`
	ImageURLBack string          `json:"imageUrlBack"`
}

func (in ProductInput) apply(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.ImageURL = in.ImageURL
	p.ImageURLBack = in.ImageURLBack
}
