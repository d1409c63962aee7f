package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
)

// PriceReader exposes the read surface the page sessions need.
type PriceReader interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	PricesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}

// Repository wires product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return &product, nil
}

// PricesByIDs loads unit prices for the given products in one query. Every
// requested id must resolve; a missing product is reported as not found so
// the caller can fail fast instead of computing with a zero price.
func (r *Repository) PricesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	if len(ids) == 0 {
		return map[int64]decimal.Decimal{}, nil
	}

	var rows []Product
	err := r.db.WithContext(ctx).
		Select("id", "price").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load unit prices")
	}

	prices := make(map[int64]decimal.Decimal, len(rows))
	for _, row := range rows {
		prices[row.ID] = row.Price
	}

	for _, id := range ids {
		if _, ok := prices[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
		}
	}
	return prices, nil
}
