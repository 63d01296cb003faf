package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, doc *Document) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Document, error)
	List(ctx context.Context, db *gorm.DB, docType DocumentType) ([]Document, error)
	GetSequence(ctx context.Context, db *gorm.DB, docType DocumentType) (*DocumentSequence, error)
	UpsertSequence(ctx context.Context, db *gorm.DB, seq *DocumentSequence) error
}
