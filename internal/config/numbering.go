package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// NumberingConfig holds the per-document-type seed used when no number
// has been assigned yet for that type.
type NumberingConfig struct {
	Invoice     string `mapstructure:"invoice"`
	Proforma    string `mapstructure:"proforma"`
	SalesReturn string `mapstructure:"salesReturn"`
}

func DefaultNumberingConfig() NumberingConfig {
	return NumberingConfig{
		Invoice:     "INV-00001",
		Proforma:    "PI-00001",
		SalesReturn: "RS-00001",
	}
}

// NumberingHolder serves the current numbering config and hot-reloads
// it when the config file changes.
type NumberingHolder struct {
	current atomic.Value // holds NumberingConfig
}

func NewNumberingHolder() (*NumberingHolder, error) {
	v := viper.New()

	v.SetConfigName("bahikhata")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/bahikhata")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BAHIKHATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultNumberingConfig()
		v.SetDefault("numbering.invoice", defaults.Invoice)
		v.SetDefault("numbering.proforma", defaults.Proforma)
		v.SetDefault("numbering.salesReturn", defaults.SalesReturn)
	}

	holder := &NumberingHolder{}
	if err := holder.reload(v); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(fsnotify.Event) {
		if err := holder.reload(v); err != nil {
			log.Printf("numbering config reload failed: %v", err)
		}
	})
	v.WatchConfig()

	return holder, nil
}

func (h *NumberingHolder) reload(v *viper.Viper) error {
	var cfg NumberingConfig
	if err := v.UnmarshalKey("numbering", &cfg); err != nil {
		return err
	}
	defaults := DefaultNumberingConfig()
	if cfg.Invoice == "" {
		cfg.Invoice = defaults.Invoice
	}
	if cfg.Proforma == "" {
		cfg.Proforma = defaults.Proforma
	}
	if cfg.SalesReturn == "" {
		cfg.SalesReturn = defaults.SalesReturn
	}
	h.current.Store(cfg)
	return nil
}

// Current returns the live numbering config.
func (h *NumberingHolder) Current() NumberingConfig {
	if cfg, ok := h.current.Load().(NumberingConfig); ok {
		return cfg
	}
	return DefaultNumberingConfig()
}

// SeedFor maps a document type name to its configured seed.
func (h *NumberingHolder) SeedFor(docType string) string {
	cfg := h.Current()
	switch docType {
	case "PROFORMA":
		return cfg.Proforma
	case "SALES_RETURN":
		return cfg.SalesReturn
	default:
		return cfg.Invoice
	}
}
