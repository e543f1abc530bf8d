// Package service implements the sales, purchase and public eFaktura
// operations on top of the transport client.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/efaktura/internal/cache"
	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/internal/transport"
)

// ErrUnsupported is returned by operations the remote API cannot serve.
var ErrUnsupported = errors.New("operation not supported by the eFaktura API")

// FileError reports a local file that could not be read or written.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Transport is the subset of *transport.Client the services need.
type Transport interface {
	Get(ctx context.Context, endpoint string, opts ...transport.RequestOption) (*transport.Payload, error)
	Post(ctx context.Context, endpoint string, data any, opts ...transport.RequestOption) (*transport.Payload, error)
	Put(ctx context.Context, endpoint string, data any, opts ...transport.RequestOption) (*transport.Payload, error)
	Delete(ctx context.Context, endpoint string, data any, opts ...transport.RequestOption) (*transport.Payload, error)
	PostRaw(ctx context.Context, endpoint, contentType string, body []byte, opts ...transport.RequestOption) (*transport.Payload, error)
	PostMultipart(ctx context.Context, endpoint string, parts []transport.Part, opts ...transport.RequestOption) (*transport.Payload, error)
	GetFile(ctx context.Context, endpoint string, opts ...transport.RequestOption) ([]byte, error)
}

const DefaultReferenceTTL = 24 * time.Hour

// Reference data cache keys, without the configured prefix.
const (
	keyCompaniesAll    = "companies_all"
	keyCompaniesActive = "companies_active"
	keyUnitMeasures    = "unit_measures"
	keyVatExemptions   = "vat_exemptions"
)

// CacheConfig controls caching of reference data.
type CacheConfig struct {
	Enabled          bool
	Prefix           string
	CompaniesTTL     time.Duration
	UnitMeasuresTTL  time.Duration
	VatExemptionsTTL time.Duration
}

// DefaultCacheConfig enables caching for one day with the efaktura_ prefix.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:          true,
		Prefix:           "efaktura_",
		CompaniesTTL:     DefaultReferenceTTL,
		UnitMeasuresTTL:  DefaultReferenceTTL,
		VatExemptionsTTL: DefaultReferenceTTL,
	}
}

// Option configures a service
type Option func(*settings)

type settings struct {
	cache    *cache.Cache
	cacheCfg CacheConfig
	log      zerolog.Logger
}

// WithCache caches reference data in c according to cfg. Services sharing
// the same c see each other's entries, so ClearCache covers all of them.
func WithCache(c *cache.Cache, cfg CacheConfig) Option {
	return func(s *settings) {
		s.cache = c
		s.cacheCfg = cfg
	}
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

func applyOptions(opts []Option) settings {
	s := settings{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.cacheCfg.Enabled && s.cache == nil {
		s.cache = cache.New(cache.NewMemoryStore(), s.log)
	}
	return s
}

// reference fetches reference data through the cache when it is enabled.
type reference struct {
	cache *cache.Cache
	cfg   CacheConfig
}

func (r reference) key(name string) string {
	return r.cfg.Prefix + name
}

func (r reference) enabled() bool {
	return r.cfg.Enabled && r.cache != nil
}

// load returns the payload for name, fetching it live on a miss. Only
// successful payloads are cached.
func (r reference) load(ctx context.Context, name string, ttl time.Duration, fetch func(context.Context) (*transport.Payload, error)) (*transport.Payload, error) {
	if !r.enabled() {
		return fetch(ctx)
	}
	if ttl <= 0 {
		ttl = DefaultReferenceTTL
	}

	data, err := r.cache.Remember(ctx, r.key(name), ttl, func(ctx context.Context) ([]byte, error) {
		p, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return p.Bytes(), nil
	})
	if err != nil {
		return nil, err
	}
	return transport.Decode(data), nil
}

func (r reference) forget(ctx context.Context, names ...string) error {
	if r.cache == nil {
		return nil
	}
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = r.key(name)
	}
	return r.cache.Forget(ctx, keys...)
}

// Filter narrows id and overview queries. Zero fields are not sent.
type Filter struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.DateFrom != nil {
		q.Set("dateFrom", model.FormatTime(*f.DateFrom))
	}
	if f.DateTo != nil {
		q.Set("dateTo", model.FormatTime(*f.DateTo))
	}
	return q
}

func dateQuery(date time.Time) url.Values {
	return url.Values{"date": {model.FormatTime(date)}}
}

func invoiceIDQuery(id int64) url.Values {
	return url.Values{"invoiceId": {fmt.Sprint(id)}}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// optional maps an empty string to a JSON null.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func decodeObject[T any](p *transport.Payload, what string, from func(map[string]any) (*T, error)) (*T, error) {
	v, err := from(p.Map())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return v, nil
}

func decodeList[T any](p *transport.Payload, what string, from func(map[string]any) (*T, error)) ([]T, error) {
	items, err := model.HydrateList(p.List(), from)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return items, nil
}
