package migration

import (
	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/bahikhata/internal/catalog/domain"
	"github.com/smallbiznis/bahikhata/internal/config"
	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	partydomain "github.com/smallbiznis/bahikhata/internal/party/domain"
	"github.com/smallbiznis/bahikhata/internal/seed"
	taxratedomain "github.com/smallbiznis/bahikhata/internal/taxrate/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite/mysql dev setups get the schema straight from the models.
			if err := conn.AutoMigrate(
				&taxratedomain.GSTRate{},
				&catalogdomain.Item{},
				&partydomain.Party{},
				&documentdomain.Document{},
				&documentdomain.DocumentLine{},
				&documentdomain.DocumentSequence{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureGSTRates(conn, node)
	}),
)
