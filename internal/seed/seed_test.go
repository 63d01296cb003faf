package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	taxratedomain "github.com/smallbiznis/bahikhata/internal/taxrate/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestEnsureGSTRates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&taxratedomain.GSTRate{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	assert.NoError(t, EnsureGSTRates(db, node))

	var count int64
	assert.NoError(t, db.Model(&taxratedomain.GSTRate{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultSlabs)), count)

	// A populated table is left alone on the next startup.
	assert.NoError(t, EnsureGSTRates(db, node))
	assert.NoError(t, db.Model(&taxratedomain.GSTRate{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultSlabs)), count)
}

func TestEnsureGSTRates_RequiresHandles(t *testing.T) {
	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	assert.Error(t, EnsureGSTRates(nil, node))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.Error(t, EnsureGSTRates(db, nil))
}
