package model

import "time"

// MiniCompany is an entry of the eFaktura company directory.
type MiniCompany struct {
	CompanyID          *string
	Name               *string
	Pib                *string
	Mb                 *string
	Jbkjs              *string
	Address            *string
	City               *string
	Zip                *string
	CountryCode        *string
	Email              *string
	Phone              *string
	RegistrationStatus *string
}

func MiniCompanyFromMap(m map[string]any) (*MiniCompany, error) {
	r := newReader("MiniCompany", m)
	c := &MiniCompany{
		CompanyID:          r.String("companyId"),
		Name:               r.String("name"),
		Pib:                r.String("pib"),
		Mb:                 r.String("mb"),
		Jbkjs:              r.String("jbkjs"),
		Address:            r.String("address"),
		City:               r.String("city"),
		Zip:                r.String("zip"),
		CountryCode:        r.String("countryCode"),
		Email:              r.String("email"),
		Phone:              r.String("phone"),
		RegistrationStatus: r.String("registrationStatus"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c MiniCompany) ToMap() map[string]any {
	w := writer{}
	w.String("companyId", c.CompanyID)
	w.String("name", c.Name)
	w.String("pib", c.Pib)
	w.String("mb", c.Mb)
	w.String("jbkjs", c.Jbkjs)
	w.String("address", c.Address)
	w.String("city", c.City)
	w.String("zip", c.Zip)
	w.String("countryCode", c.CountryCode)
	w.String("email", c.Email)
	w.String("phone", c.Phone)
	w.String("registrationStatus", c.RegistrationStatus)
	return w
}

func (c MiniCompany) MarshalJSON() ([]byte, error) { return toJSON(c.ToMap()) }

func (c *MiniCompany) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, MiniCompanyFromMap)
	if err != nil {
		return err
	}
	*c = *v
	return nil
}

// CompanyAccount tells whether a company is registered on eFaktura.
type CompanyAccount struct {
	HasAccount *bool
	IsActive   *bool
	CompanyID  *string
	Pib        *string
	Mb         *string
	Jbkjs      *string
	Name       *string
}

func CompanyAccountFromMap(m map[string]any) (*CompanyAccount, error) {
	r := newReader("CompanyAccount", m)
	a := &CompanyAccount{
		HasAccount: r.Bool("hasAccount"),
		IsActive:   r.Bool("isActive"),
		CompanyID:  r.String("companyId"),
		Pib:        r.String("pib"),
		Mb:         r.String("mb"),
		Jbkjs:      r.String("jbkjs"),
		Name:       r.String("name"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a CompanyAccount) ToMap() map[string]any {
	w := writer{}
	w.Bool("hasAccount", a.HasAccount)
	w.Bool("isActive", a.IsActive)
	w.String("companyId", a.CompanyID)
	w.String("pib", a.Pib)
	w.String("mb", a.Mb)
	w.String("jbkjs", a.Jbkjs)
	w.String("name", a.Name)
	return w
}

func (a CompanyAccount) MarshalJSON() ([]byte, error) { return toJSON(a.ToMap()) }

func (a *CompanyAccount) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, CompanyAccountFromMap)
	if err != nil {
		return err
	}
	*a = *v
	return nil
}

// Registered reports whether the lookup found an active account.
func (a CompanyAccount) Registered() bool {
	return a.HasAccount != nil && *a.HasAccount && (a.IsActive == nil || *a.IsActive)
}

// Version is the eFaktura release the service is running.
type Version struct {
	Version     *string
	ReleaseDate *time.Time
}

func VersionFromMap(m map[string]any) (*Version, error) {
	r := newReader("Version", m)
	v := &Version{
		Version:     r.String("version"),
		ReleaseDate: r.Time("releaseDate"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v Version) ToMap() map[string]any {
	w := writer{}
	w.String("version", v.Version)
	w.Time("releaseDate", v.ReleaseDate)
	return w
}

func (v Version) MarshalJSON() ([]byte, error) { return toJSON(v.ToMap()) }

func (v *Version) UnmarshalJSON(data []byte) error {
	parsed, err := fromJSON(data, VersionFromMap)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// UnitMeasure is a unit of measure code accepted on invoice lines.
type UnitMeasure struct {
	Code          *string
	Symbol        *string
	NameEng       *string
	NameSrbLtn    *string
	NameSrbCyr    *string
	IsOnShortList *bool
}

func UnitMeasureFromMap(m map[string]any) (*UnitMeasure, error) {
	r := newReader("UnitMeasure", m)
	u := &UnitMeasure{
		Code:          r.String("code"),
		Symbol:        r.String("symbol"),
		NameEng:       r.String("nameEng"),
		NameSrbLtn:    r.String("nameSrbLtn"),
		NameSrbCyr:    r.String("nameSrbCyr"),
		IsOnShortList: r.Bool("isOnShortList"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u UnitMeasure) ToMap() map[string]any {
	w := writer{}
	w.String("code", u.Code)
	w.String("symbol", u.Symbol)
	w.String("nameEng", u.NameEng)
	w.String("nameSrbLtn", u.NameSrbLtn)
	w.String("nameSrbCyr", u.NameSrbCyr)
	w.Bool("isOnShortList", u.IsOnShortList)
	return w
}

func (u UnitMeasure) MarshalJSON() ([]byte, error) { return toJSON(u.ToMap()) }

func (u *UnitMeasure) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, UnitMeasureFromMap)
	if err != nil {
		return err
	}
	*u = *v
	return nil
}

// VatExemptionReason is a VAT exemption code usable on sales invoices.
type VatExemptionReason struct {
	Code        *string
	Description *string
	TaxCategory *string
}

func VatExemptionReasonFromMap(m map[string]any) (*VatExemptionReason, error) {
	r := newReader("VatExemptionReason", m)
	v := &VatExemptionReason{
		Code:        r.String("code"),
		Description: r.String("description"),
		TaxCategory: r.String("taxCategory"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v VatExemptionReason) ToMap() map[string]any {
	w := writer{}
	w.String("code", v.Code)
	w.String("description", v.Description)
	w.String("taxCategory", v.TaxCategory)
	return w
}

func (v VatExemptionReason) MarshalJSON() ([]byte, error) { return toJSON(v.ToMap()) }

func (v *VatExemptionReason) UnmarshalJSON(data []byte) error {
	parsed, err := fromJSON(data, VatExemptionReasonFromMap)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}
