package model

// Party is a counterpart company embedded in an invoice snapshot.
type Party struct {
	CompanyID        *string
	Name             *string
	Pib              *string
	Mb               *string
	Jbkjs            *string
	StreetName       *string
	BuildingNumber   *string
	CityName         *string
	PostalZone       *string
	CountryCode      *string
	CountryName      *string
	Email            *string
	Telephone        *string
	BankAccount      *string
	ContactName      *string
	ContactEmail     *string
	ContactTelephone *string
}

func PartyFromMap(m map[string]any) (*Party, error) {
	r := newReader("Party", m)
	p := &Party{
		CompanyID:        r.String("companyId"),
		Name:             r.String("name"),
		Pib:              r.String("pib"),
		Mb:               r.String("mb"),
		Jbkjs:            r.String("jbkjs"),
		StreetName:       r.String("streetName"),
		BuildingNumber:   r.String("buildingNumber"),
		CityName:         r.String("cityName"),
		PostalZone:       r.String("postalZone"),
		CountryCode:      r.String("countryCode"),
		CountryName:      r.String("countryName"),
		Email:            r.String("email"),
		Telephone:        r.String("telephone"),
		BankAccount:      r.String("bankAccount"),
		ContactName:      r.String("contactName"),
		ContactEmail:     r.String("contactEmail"),
		ContactTelephone: r.String("contactTelephone"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p Party) ToMap() map[string]any {
	w := writer{}
	w.String("companyId", p.CompanyID)
	w.String("name", p.Name)
	w.String("pib", p.Pib)
	w.String("mb", p.Mb)
	w.String("jbkjs", p.Jbkjs)
	w.String("streetName", p.StreetName)
	w.String("buildingNumber", p.BuildingNumber)
	w.String("cityName", p.CityName)
	w.String("postalZone", p.PostalZone)
	w.String("countryCode", p.CountryCode)
	w.String("countryName", p.CountryName)
	w.String("email", p.Email)
	w.String("telephone", p.Telephone)
	w.String("bankAccount", p.BankAccount)
	w.String("contactName", p.ContactName)
	w.String("contactEmail", p.ContactEmail)
	w.String("contactTelephone", p.ContactTelephone)
	return w
}

func (p Party) MarshalJSON() ([]byte, error) { return toJSON(p.ToMap()) }

func (p *Party) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, PartyFromMap)
	if err != nil {
		return err
	}
	*p = *v
	return nil
}
