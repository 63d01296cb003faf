// Package seed bootstraps reference data on startup.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	taxratedomain "github.com/smallbiznis/bahikhata/internal/taxrate/domain"
	"gorm.io/gorm"
)

type slab struct {
	label string
	rate  float64
}

// The standard GST slabs plus their IGST variants. Operators can add
// rows later; an already-populated table is left alone.
var defaultSlabs = []slab{
	{"GST@0%", 0},
	{"GST@0.25%", 0.25},
	{"GST@3%", 3},
	{"GST@5%", 5},
	{"GST@12%", 12},
	{"GST@18%", 18},
	{"GST@28%", 28},
	{"IGST@0%", 0},
	{"IGST@0.25%", 0.25},
	{"IGST@3%", 3},
	{"IGST@5%", 5},
	{"IGST@12%", 12},
	{"IGST@18%", 18},
	{"IGST@28%", 28},
}

// EnsureGSTRates seeds the rate table when it is empty.
func EnsureGSTRates(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&taxratedomain.GSTRate{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for i, s := range defaultSlabs {
			rate := taxratedomain.GSTRate{
				ID:          node.Generate(),
				Label:       s.label,
				RatePercent: s.rate,
				Position:    i,
			}
			if err := tx.Create(&rate).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
