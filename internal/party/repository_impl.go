package party

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bahikhata/internal/party/domain"
	"gorm.io/gorm"
)

type repo struct{}

func ProvideRepository() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, party *domain.Party) error {
	if err := party.Validate(); err != nil {
		return err
	}
	return db.WithContext(ctx).Create(party).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Party, error) {
	var party domain.Party
	err := db.WithContext(ctx).First(&party, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &party, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPartyFilter) ([]domain.Party, error) {
	var parties []domain.Party
	stmt := db.WithContext(ctx).Model(&domain.Party{})
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Phone != "" {
		stmt = stmt.Where("phone = ?", filter.Phone)
	}
	err := stmt.Order("name asc").Find(&parties).Error
	return parties, err
}
