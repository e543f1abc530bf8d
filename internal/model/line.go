package model

import "github.com/shopspring/decimal"

// InvoiceLine is one line item of an invoice.
type InvoiceLine struct {
	LineID                    *int64
	OrdinalNumber             *int64
	ItemName                  *string
	ItemDescription           *string
	SellersItemIdentification *string
	BuyersItemIdentification  *string
	InvoicedQuantity          *decimal.Decimal
	UnitCode                  *string
	UnitCodeName              *string
	LineExtensionAmount       *decimal.Decimal
	PriceAmount               *decimal.Decimal
	BaseQuantity              *decimal.Decimal
	AllowanceChargeAmount     *decimal.Decimal
	AllowanceChargeReason     *string
	AllowanceChargeIndicator  *bool
	TaxPercent                *decimal.Decimal
	TaxCategoryID             *string
	TaxExemptionReasonCode    *string
	TaxExemptionReason        *string
	ClassifiedTaxCategoryID   *string
	// Sent by the service as a string, e.g. "20".
	ClassifiedTaxCategoryPercent *string
	Note                         *string
	OrderLineReferenceID         *string
	DocumentReferenceID          *string
}

func InvoiceLineFromMap(m map[string]any) (*InvoiceLine, error) {
	r := newReader("InvoiceLine", m)
	l := &InvoiceLine{
		LineID:                       r.Int("lineId"),
		OrdinalNumber:                r.Int("ordinalNumber"),
		ItemName:                     r.String("itemName"),
		ItemDescription:              r.String("itemDescription"),
		SellersItemIdentification:    r.String("sellersItemIdentification"),
		BuyersItemIdentification:     r.String("buyersItemIdentification"),
		InvoicedQuantity:             r.Decimal("invoicedQuantity"),
		UnitCode:                     r.String("unitCode"),
		UnitCodeName:                 r.String("unitCodeName"),
		LineExtensionAmount:          r.Decimal("lineExtensionAmount"),
		PriceAmount:                  r.Decimal("priceAmount"),
		BaseQuantity:                 r.Decimal("baseQuantity"),
		AllowanceChargeAmount:        r.Decimal("allowanceChargeAmount"),
		AllowanceChargeReason:        r.String("allowanceChargeReason"),
		AllowanceChargeIndicator:     r.Bool("allowanceChargeIndicator"),
		TaxPercent:                   r.Decimal("taxPercent"),
		TaxCategoryID:                r.String("taxCategoryId"),
		TaxExemptionReasonCode:       r.String("taxExemptionReasonCode"),
		TaxExemptionReason:           r.String("taxExemptionReason"),
		ClassifiedTaxCategoryID:      r.String("classifiedTaxCategoryId"),
		ClassifiedTaxCategoryPercent: r.String("classifiedTaxCategoryPercent"),
		Note:                         r.String("note"),
		OrderLineReferenceID:         r.String("orderLineReferenceId"),
		DocumentReferenceID:          r.String("documentReferenceId"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l InvoiceLine) ToMap() map[string]any {
	w := writer{}
	w.Int("lineId", l.LineID)
	w.Int("ordinalNumber", l.OrdinalNumber)
	w.String("itemName", l.ItemName)
	w.String("itemDescription", l.ItemDescription)
	w.String("sellersItemIdentification", l.SellersItemIdentification)
	w.String("buyersItemIdentification", l.BuyersItemIdentification)
	w.Decimal("invoicedQuantity", l.InvoicedQuantity)
	w.String("unitCode", l.UnitCode)
	w.String("unitCodeName", l.UnitCodeName)
	w.Decimal("lineExtensionAmount", l.LineExtensionAmount)
	w.Decimal("priceAmount", l.PriceAmount)
	w.Decimal("baseQuantity", l.BaseQuantity)
	w.Decimal("allowanceChargeAmount", l.AllowanceChargeAmount)
	w.String("allowanceChargeReason", l.AllowanceChargeReason)
	w.Bool("allowanceChargeIndicator", l.AllowanceChargeIndicator)
	w.Decimal("taxPercent", l.TaxPercent)
	w.String("taxCategoryId", l.TaxCategoryID)
	w.String("taxExemptionReasonCode", l.TaxExemptionReasonCode)
	w.String("taxExemptionReason", l.TaxExemptionReason)
	w.String("classifiedTaxCategoryId", l.ClassifiedTaxCategoryID)
	w.String("classifiedTaxCategoryPercent", l.ClassifiedTaxCategoryPercent)
	w.String("note", l.Note)
	w.String("orderLineReferenceId", l.OrderLineReferenceID)
	w.String("documentReferenceId", l.DocumentReferenceID)
	return w
}

func (l InvoiceLine) MarshalJSON() ([]byte, error) { return toJSON(l.ToMap()) }

func (l *InvoiceLine) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, InvoiceLineFromMap)
	if err != nil {
		return err
	}
	*l = *v
	return nil
}

// TaxSubtotal is one row of an invoice's tax breakdown.
type TaxSubtotal struct {
	TaxableAmount          *decimal.Decimal
	TaxAmount              *decimal.Decimal
	Percent                *decimal.Decimal
	TaxCategoryID          *string
	TaxCategoryName        *string
	TaxExemptionReasonCode *string
	TaxExemptionReason     *string
}

func TaxSubtotalFromMap(m map[string]any) (*TaxSubtotal, error) {
	r := newReader("TaxSubtotal", m)
	t := &TaxSubtotal{
		TaxableAmount:          r.Decimal("taxableAmount"),
		TaxAmount:              r.Decimal("taxAmount"),
		Percent:                r.Decimal("percent"),
		TaxCategoryID:          r.String("taxCategoryId"),
		TaxCategoryName:        r.String("taxCategoryName"),
		TaxExemptionReasonCode: r.String("taxExemptionReasonCode"),
		TaxExemptionReason:     r.String("taxExemptionReason"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t TaxSubtotal) ToMap() map[string]any {
	w := writer{}
	w.Decimal("taxableAmount", t.TaxableAmount)
	w.Decimal("taxAmount", t.TaxAmount)
	w.Decimal("percent", t.Percent)
	w.String("taxCategoryId", t.TaxCategoryID)
	w.String("taxCategoryName", t.TaxCategoryName)
	w.String("taxExemptionReasonCode", t.TaxExemptionReasonCode)
	w.String("taxExemptionReason", t.TaxExemptionReason)
	return w
}

func (t TaxSubtotal) MarshalJSON() ([]byte, error) { return toJSON(t.ToMap()) }

func (t *TaxSubtotal) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, TaxSubtotalFromMap)
	if err != nil {
		return err
	}
	*t = *v
	return nil
}
