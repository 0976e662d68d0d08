package course

import (
	"time"

	"github.com/shopspring/decimal"
)

type Course struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	TrainerName string          `json:"trainerName"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price"`
	Duration    string          `json:"duration"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Input struct {
	Title       string          `json:"title" validate:"notblank,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	TrainerName string          `json:"trainerName" validate:"max=100"`
	StartDate   *time.Time      `json:"startDate"`
	EndDate     *time.Time      `json:"endDate"`
	ImageURL    string          `json:"imageUrl" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Duration    string          `json:"duration" validate:"notblank,max=50"`
}

func (in Input) apply(c *Course) {
	c.Title = in.Title
	c.Description = in.Description
	c.TrainerName = in.TrainerName
	c.StartDate = in.StartDate
	c.EndDate = in.EndDate
	c.ImageURL = in.ImageURL
	c.Price = in.Price
	c.Duration = in.Duration
}
