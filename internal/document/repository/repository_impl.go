package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bahikhata/internal/document/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Document, error) {
	var doc domain.Document
	err := db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, docType domain.DocumentType) ([]domain.Document, error) {
	var docs []domain.Document
	stmt := db.WithContext(ctx).Model(&domain.Document{})
	if docType != "" {
		stmt = stmt.Where("type = ?", docType)
	}
	err := stmt.Order("created_at desc, id desc").Find(&docs).Error
	return docs, err
}

func (r *repo) GetSequence(ctx context.Context, db *gorm.DB, docType domain.DocumentType) (*domain.DocumentSequence, error) {
	var seq domain.DocumentSequence
	err := db.WithContext(ctx).First(&seq, "type = ?", docType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seq, nil
}

func (r *repo) UpsertSequence(ctx context.Context, db *gorm.DB, seq *domain.DocumentSequence) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"current", "updated_at"}),
	}).Create(seq).Error
}
