package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	catalogdomain "github.com/smallbiznis/bahikhata/internal/catalog/domain"
	"github.com/smallbiznis/bahikhata/internal/config"
	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	"github.com/smallbiznis/bahikhata/internal/observability/metrics"
	partydomain "github.com/smallbiznis/bahikhata/internal/party/domain"
	pricingservice "github.com/smallbiznis/bahikhata/internal/pricing/service"
	taxratedomain "github.com/smallbiznis/bahikhata/internal/taxrate/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server wires the HTTP layer to the domain services.
type Server struct {
	cfg     config.Config
	log     *zap.Logger
	db      *gorm.DB
	genID   *snowflake.Node
	metrics *metrics.Metrics

	engine      *pricingservice.Engine
	documentSvc documentdomain.Service
	catalogRepo catalogdomain.Repository
	partyRepo   partydomain.Repository
	taxRateRepo taxratedomain.Repository
}

type ServerParam struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	DB      *gorm.DB
	GenID   *snowflake.Node
	Metrics *metrics.Metrics

	Engine      *pricingservice.Engine
	DocumentSvc documentdomain.Service
	CatalogRepo catalogdomain.Repository
	PartyRepo   partydomain.Repository
	TaxRateRepo taxratedomain.Repository
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:         p.Config,
		log:         p.Log.Named("http.server"),
		db:          p.DB,
		genID:       p.GenID,
		metrics:     p.Metrics,
		engine:      p.Engine,
		documentSvc: p.DocumentSvc,
		catalogRepo: p.CatalogRepo,
		partyRepo:   p.PartyRepo,
		taxRateRepo: p.TaxRateRepo,
	}
}

// NewEngine builds the gin engine with the shared middlewares.
func NewEngine(cfg config.Config, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(requestMetrics(m))
	return e
}

func requestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// RegisterRoutes attaches every endpoint to the engine.
func (s *Server) RegisterRoutes(e *gin.Engine) {
	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	v1 := e.Group("/v1")
	{
		v1.POST("/pricing/preview", s.PricingPreview)
		v1.POST("/pricing/select-item", s.SelectItem)

		v1.POST("/documents", s.SaveDocument)
		v1.GET("/documents", s.ListDocuments)
		v1.GET("/documents/next-number", s.NextDocumentNumber)
		v1.GET("/documents/:id", s.GetDocument)

		v1.GET("/items", s.ListItems)
		v1.GET("/items/:id", s.GetItem)
		v1.POST("/items", s.CreateItem)

		v1.GET("/parties", s.ListParties)
		v1.GET("/parties/:id", s.GetParty)
		v1.POST("/parties", s.CreateParty)

		v1.GET("/tax-rates", s.ListTaxRates)
		v1.POST("/tax-rates", s.CreateTaxRate)
	}
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, e *gin.Engine, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.RegisterRoutes(e)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)
