package service

import (
	"context"
	"net/url"

	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/internal/transport"
)

const publicBase = "/api/publicApi"

// CompanyLookup identifies a company by any of its registry numbers.
// Empty fields are not sent.
type CompanyLookup struct {
	CompanyID string
	Pib       string
	Mb        string
	Jbkjs     string
}

func (l CompanyLookup) body() map[string]any {
	body := map[string]any{}
	for key, value := range map[string]string{
		"companyId": l.CompanyID,
		"pib":       l.Pib,
		"mb":        l.Mb,
		"jbkjs":     l.Jbkjs,
	} {
		if value != "" {
			body[key] = value
		}
	}
	return body
}

// PublicAPIService covers the account-independent endpoints: version,
// directories, registration checks and the notification subscription.
type PublicAPIService struct {
	client Transport
	ref    reference
}

func NewPublicAPIService(client Transport, opts ...Option) *PublicAPIService {
	s := applyOptions(opts)
	return &PublicAPIService{
		client: client,
		ref:    reference{cache: s.cache, cfg: s.cacheCfg},
	}
}

func (s *PublicAPIService) Version(ctx context.Context) (*model.Version, error) {
	p, err := s.client.Get(ctx, publicBase+"/getEfakturaVersion")
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "version", model.VersionFromMap)
}

// UnitMeasures lists unit of measure codes. The list is cached.
func (s *PublicAPIService) UnitMeasures(ctx context.Context) ([]model.UnitMeasure, error) {
	p, err := s.ref.load(ctx, keyUnitMeasures, s.ref.cfg.UnitMeasuresTTL, func(ctx context.Context) (*transport.Payload, error) {
		return s.client.Get(ctx, publicBase+"/get-unit-measures")
	})
	if err != nil {
		return nil, err
	}
	return decodeList(p, "unit measures", model.UnitMeasureFromMap)
}

// AllCompanies returns the company directory. Active companies and the
// full directory are cached separately.
func (s *PublicAPIService) AllCompanies(ctx context.Context, includeAllStatuses bool) ([]model.MiniCompany, error) {
	key := keyCompaniesActive
	if includeAllStatuses {
		key = keyCompaniesAll
	}

	p, err := s.ref.load(ctx, key, s.ref.cfg.CompaniesTTL, func(ctx context.Context) (*transport.Payload, error) {
		return s.client.Get(ctx, publicBase+"/getAllCompanies", transport.WithQuery(includeAllQuery(includeAllStatuses)))
	})
	if err != nil {
		return nil, err
	}
	return decodeList(p, "companies", model.MiniCompanyFromMap)
}

// DownloadAllCompanies downloads the directory as a file.
func (s *PublicAPIService) DownloadAllCompanies(ctx context.Context, includeAllStatuses bool) ([]byte, error) {
	return s.client.GetFile(ctx, publicBase+"/downloadAllCompanies", transport.WithQuery(includeAllQuery(includeAllStatuses)))
}

// Subscribe renews the daily status notification subscription. It returns
// the plain text acknowledgement, or "" when the service sends none.
func (s *PublicAPIService) Subscribe(ctx context.Context) (string, error) {
	p, err := s.client.Post(ctx, publicBase+"/subscribe", nil)
	if err != nil {
		return "", err
	}
	return p.Text(), nil
}

// UpdateCompany asks the service to refresh the account's company data.
func (s *PublicAPIService) UpdateCompany(ctx context.Context) (map[string]any, error) {
	p, err := s.client.Put(ctx, publicBase+"/company/update-company", nil)
	if err != nil {
		return nil, err
	}
	return responseMap(p), nil
}

// CheckIfCompanyRegistered reports whether a company can receive invoices.
func (s *PublicAPIService) CheckIfCompanyRegistered(ctx context.Context, lookup CompanyLookup) (*model.CompanyAccount, error) {
	p, err := s.client.Post(ctx, publicBase+"/Company/CheckIfCompanyRegisteredOnEfaktura", lookup.body())
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "company account", model.CompanyAccountFromMap)
}

func (s *PublicAPIService) CheckByPib(ctx context.Context, pib string) (*model.CompanyAccount, error) {
	return s.CheckIfCompanyRegistered(ctx, CompanyLookup{Pib: pib})
}

func (s *PublicAPIService) CheckByMb(ctx context.Context, mb string) (*model.CompanyAccount, error) {
	return s.CheckIfCompanyRegistered(ctx, CompanyLookup{Mb: mb})
}

func (s *PublicAPIService) CheckByJbkjs(ctx context.Context, jbkjs string) (*model.CompanyAccount, error) {
	return s.CheckIfCompanyRegistered(ctx, CompanyLookup{Jbkjs: jbkjs})
}

// FindCompanyByPib scans the active company directory. It returns nil when
// no company has the given PIB.
func (s *PublicAPIService) FindCompanyByPib(ctx context.Context, pib string) (*model.MiniCompany, error) {
	companies, err := s.AllCompanies(ctx, false)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		if c := companies[i]; c.Pib != nil && *c.Pib == pib {
			return &c, nil
		}
	}
	return nil, nil
}

// ClearCache drops every cached reference list.
func (s *PublicAPIService) ClearCache(ctx context.Context) error {
	return s.ref.forget(ctx, keyCompaniesAll, keyCompaniesActive, keyUnitMeasures, keyVatExemptions)
}

func includeAllQuery(includeAll bool) url.Values {
	return url.Values{"includeAllStatuses": {boolString(includeAll)}}
}
