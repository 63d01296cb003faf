package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bahikhata/internal/catalog"
	"github.com/smallbiznis/bahikhata/internal/config"
	"github.com/smallbiznis/bahikhata/internal/document"
	"github.com/smallbiznis/bahikhata/internal/migration"
	"github.com/smallbiznis/bahikhata/internal/observability/metrics"
	"github.com/smallbiznis/bahikhata/internal/party"
	"github.com/smallbiznis/bahikhata/internal/pricing"
	"github.com/smallbiznis/bahikhata/internal/server"
	"github.com/smallbiznis/bahikhata/internal/taxrate"
	"github.com/smallbiznis/bahikhata/pkg/db"
	"github.com/smallbiznis/bahikhata/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		metrics.Module,
		migration.Module,

		// Functional domains
		pricing.Module,
		taxrate.Module,
		catalog.Module,
		party.Module,
		document.Module,

		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
