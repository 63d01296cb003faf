package taxrate

import (
	"context"

	"github.com/smallbiznis/bahikhata/internal/taxrate/domain"
	"gorm.io/gorm"
)

type repo struct{}

func ProvideRepository() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.GSTRate, error) {
	var rates []domain.GSTRate
	err := db.WithContext(ctx).
		Order("position asc, rate_percent asc").
		Find(&rates).Error
	return rates, err
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rate *domain.GSTRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	return db.WithContext(ctx).Create(rate).Error
}
