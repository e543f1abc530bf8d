// Package efaktura is a typed client for the Serbian eFaktura e-invoicing API.
//
// Example usage:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := efaktura.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	invoice, err := client.Sales.Get(ctx, 12345)
package efaktura

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rezonia/efaktura/internal/cache"
	"github.com/rezonia/efaktura/internal/config"
	"github.com/rezonia/efaktura/internal/service"
	"github.com/rezonia/efaktura/internal/transport"
)

// Client groups the three eFaktura services over one transport and one
// reference-data cache.
type Client struct {
	Sales    *service.SalesInvoiceService
	Purchase *service.PurchaseInvoiceService
	Public   *service.PublicAPIService

	cfg   *config.Config
	http  *transport.Client
	cache *cache.Cache
	close func() error
}

// Option configures a Client
type Option func(*options)

type options struct {
	httpClient *http.Client
	log        zerolog.Logger
	store      cache.Store
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger sets the logger for request logging and cache warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithCacheStore overrides the store chosen by cfg.Cache.Driver.
func WithCacheStore(store cache.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// New builds a client from cfg. The config is validated first.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	topts := []transport.Option{
		transport.WithTimeout(cfg.HTTP.Timeout),
		transport.WithConnectTimeout(cfg.HTTP.ConnectTimeout),
		transport.WithRetry(cfg.HTTP.RetryTimes, cfg.HTTP.RetrySleep),
	}
	if o.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(o.httpClient))
	}
	if cfg.Logging.Enabled {
		// Request logging is debug output; enabling it must not depend on the app log level.
		topts = append(topts, transport.WithLogger(o.log.Level(zerolog.DebugLevel)))
	}
	httpClient := transport.New(cfg.APIKey, cfg.BaseURL(), topts...)

	c := &Client{cfg: cfg, http: httpClient, close: func() error { return nil }}

	cacheCfg := service.CacheConfig{
		Enabled:          cfg.Cache.Enabled,
		Prefix:           cfg.Cache.Prefix,
		CompaniesTTL:     cfg.Cache.CompaniesTTL,
		UnitMeasuresTTL:  cfg.Cache.UnitMeasuresTTL,
		VatExemptionsTTL: cfg.Cache.VatExemptionsTTL,
	}
	if cfg.Cache.Enabled {
		store, closeStore, err := openStore(cfg, o.store)
		if err != nil {
			return nil, err
		}
		c.cache = cache.New(store, o.log)
		c.close = closeStore
	}

	sopts := []service.Option{
		service.WithCache(c.cache, cacheCfg),
		service.WithLogger(o.log),
	}
	c.Sales = service.NewSalesInvoiceService(httpClient, sopts...)
	c.Purchase = service.NewPurchaseInvoiceService(httpClient, sopts...)
	c.Public = service.NewPublicAPIService(httpClient, sopts...)

	return c, nil
}

func openStore(cfg *config.Config, override cache.Store) (cache.Store, func() error, error) {
	noop := func() error { return nil }
	if override != nil {
		return override, noop, nil
	}
	switch cfg.Cache.Driver {
	case config.CacheDriverSQLite:
		store, err := cache.OpenSQLite(cfg.Cache.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.CacheDriverMemory, "":
		return cache.NewMemoryStore(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// Close releases the cache database, if any.
func (c *Client) Close() error {
	return c.close()
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

func (c *Client) IsDemo() bool {
	return c.cfg.IsDemo()
}

func (c *Client) IsProduction() bool {
	return c.cfg.IsProduction()
}

// Config returns the configuration the client was built from.
func (c *Client) Config() *config.Config {
	return c.cfg
}
