package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoiceStatusChange is one entry of the sales changes feed for a day.
type SalesInvoiceStatusChange struct {
	SalesInvoiceID   *int64
	InvoiceNumber    *string
	Status           *SalesInvoiceStatus
	CirInvoiceID     *string
	CirStatus        *CirInvoiceStatus
	StatusChangeDate *time.Time
	BuyerPib         *string
	BuyerName        *string
	TotalAmount      *decimal.Decimal
}

func SalesInvoiceStatusChangeFromMap(m map[string]any) (*SalesInvoiceStatusChange, error) {
	r := newReader("SalesInvoiceStatusChange", m)
	c := &SalesInvoiceStatusChange{
		SalesInvoiceID:   r.Int("salesInvoiceId"),
		InvoiceNumber:    r.String("invoiceNumber"),
		Status:           readEnum[SalesInvoiceStatus](r, "status"),
		CirInvoiceID:     r.String("cirInvoiceId"),
		CirStatus:        readEnum[CirInvoiceStatus](r, "cirStatus"),
		StatusChangeDate: r.Time("statusChangeDate"),
		BuyerPib:         r.String("buyerPib"),
		BuyerName:        r.String("buyerName"),
		TotalAmount:      r.Decimal("totalAmount"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c SalesInvoiceStatusChange) ToMap() map[string]any {
	w := writer{}
	w.Int("salesInvoiceId", c.SalesInvoiceID)
	w.String("invoiceNumber", c.InvoiceNumber)
	writeEnum(w, "status", c.Status)
	w.String("cirInvoiceId", c.CirInvoiceID)
	writeEnum(w, "cirStatus", c.CirStatus)
	w.Time("statusChangeDate", c.StatusChangeDate)
	w.String("buyerPib", c.BuyerPib)
	w.String("buyerName", c.BuyerName)
	w.Decimal("totalAmount", c.TotalAmount)
	return w
}

func (c SalesInvoiceStatusChange) MarshalJSON() ([]byte, error) { return toJSON(c.ToMap()) }

func (c *SalesInvoiceStatusChange) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, SalesInvoiceStatusChangeFromMap)
	if err != nil {
		return err
	}
	*c = *v
	return nil
}

// PurchaseInvoiceStatusChange is one entry of the purchase changes feed for a day.
type PurchaseInvoiceStatusChange struct {
	PurchaseInvoiceID *int64
	InvoiceNumber     *string
	Status            *PurchaseInvoiceStatus
	CirInvoiceID      *string
	CirStatus         *CirInvoiceStatus
	StatusChangeDate  *time.Time
	SupplierPib       *string
	SupplierName      *string
	TotalAmount       *decimal.Decimal
}

func PurchaseInvoiceStatusChangeFromMap(m map[string]any) (*PurchaseInvoiceStatusChange, error) {
	r := newReader("PurchaseInvoiceStatusChange", m)
	c := &PurchaseInvoiceStatusChange{
		PurchaseInvoiceID: r.Int("purchaseInvoiceId"),
		InvoiceNumber:     r.String("invoiceNumber"),
		Status:            readEnum[PurchaseInvoiceStatus](r, "status"),
		CirInvoiceID:      r.String("cirInvoiceId"),
		CirStatus:         readEnum[CirInvoiceStatus](r, "cirStatus"),
		StatusChangeDate:  r.Time("statusChangeDate"),
		SupplierPib:       r.String("supplierPib"),
		SupplierName:      r.String("supplierName"),
		TotalAmount:       r.Decimal("totalAmount"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c PurchaseInvoiceStatusChange) ToMap() map[string]any {
	w := writer{}
	w.Int("purchaseInvoiceId", c.PurchaseInvoiceID)
	w.String("invoiceNumber", c.InvoiceNumber)
	writeEnum(w, "status", c.Status)
	w.String("cirInvoiceId", c.CirInvoiceID)
	writeEnum(w, "cirStatus", c.CirStatus)
	w.Time("statusChangeDate", c.StatusChangeDate)
	w.String("supplierPib", c.SupplierPib)
	w.String("supplierName", c.SupplierName)
	w.Decimal("totalAmount", c.TotalAmount)
	return w
}

func (c PurchaseInvoiceStatusChange) MarshalJSON() ([]byte, error) { return toJSON(c.ToMap()) }

func (c *PurchaseInvoiceStatusChange) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, PurchaseInvoiceStatusChangeFromMap)
	if err != nil {
		return err
	}
	*c = *v
	return nil
}

// PurchaseInvoiceOverview is one row of the purchase invoice overview.
type PurchaseInvoiceOverview struct {
	PurchaseInvoiceID  *int64
	InvoiceNumber      *string
	InvoiceTypeCode    *string
	IssueDate          *time.Time
	DueDate            *time.Time
	Status             *PurchaseInvoiceStatus
	CirInvoiceID       *string
	CirStatus          *CirInvoiceStatus
	SupplierPib        *string
	SupplierName       *string
	TaxExclusiveAmount *decimal.Decimal
	TaxAmount          *decimal.Decimal
	PayableAmount      *decimal.Decimal
	CurrencyCode       *string
	DeliveredDate      *time.Time
	SeenDate           *time.Time
}

func PurchaseInvoiceOverviewFromMap(m map[string]any) (*PurchaseInvoiceOverview, error) {
	r := newReader("PurchaseInvoiceOverview", m)
	o := &PurchaseInvoiceOverview{
		PurchaseInvoiceID:  r.Int("purchaseInvoiceId"),
		InvoiceNumber:      r.String("invoiceNumber"),
		InvoiceTypeCode:    r.String("invoiceTypeCode"),
		IssueDate:          r.Time("issueDate"),
		DueDate:            r.Time("dueDate"),
		Status:             readEnum[PurchaseInvoiceStatus](r, "status"),
		CirInvoiceID:       r.String("cirInvoiceId"),
		CirStatus:          readEnum[CirInvoiceStatus](r, "cirStatus"),
		SupplierPib:        r.String("supplierPib"),
		SupplierName:       r.String("supplierName"),
		TaxExclusiveAmount: r.Decimal("taxExclusiveAmount"),
		TaxAmount:          r.Decimal("taxAmount"),
		PayableAmount:      r.Decimal("payableAmount"),
		CurrencyCode:       r.String("currencyCode"),
		DeliveredDate:      r.Time("deliveredDate"),
		SeenDate:           r.Time("seenDate"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o PurchaseInvoiceOverview) ToMap() map[string]any {
	w := writer{}
	w.Int("purchaseInvoiceId", o.PurchaseInvoiceID)
	w.String("invoiceNumber", o.InvoiceNumber)
	w.String("invoiceTypeCode", o.InvoiceTypeCode)
	w.Time("issueDate", o.IssueDate)
	w.Time("dueDate", o.DueDate)
	writeEnum(w, "status", o.Status)
	w.String("cirInvoiceId", o.CirInvoiceID)
	writeEnum(w, "cirStatus", o.CirStatus)
	w.String("supplierPib", o.SupplierPib)
	w.String("supplierName", o.SupplierName)
	w.Decimal("taxExclusiveAmount", o.TaxExclusiveAmount)
	w.Decimal("taxAmount", o.TaxAmount)
	w.Decimal("payableAmount", o.PayableAmount)
	w.String("currencyCode", o.CurrencyCode)
	w.Time("deliveredDate", o.DeliveredDate)
	w.Time("seenDate", o.SeenDate)
	return w
}

func (o PurchaseInvoiceOverview) MarshalJSON() ([]byte, error) { return toJSON(o.ToMap()) }

func (o *PurchaseInvoiceOverview) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, PurchaseInvoiceOverviewFromMap)
	if err != nil {
		return err
	}
	*o = *v
	return nil
}

// StatusNotification is pushed by the service to a subscribed webhook
// when an invoice changes status. Only one of the two ids is set.
type StatusNotification struct {
	SalesInvoiceID    *int64
	PurchaseInvoiceID *int64
	NewInvoiceStatus  *string
	Comment           *string
	Date              *time.Time
}

func StatusNotificationFromMap(m map[string]any) (*StatusNotification, error) {
	r := newReader("StatusNotification", m)
	n := &StatusNotification{
		SalesInvoiceID:    r.Int("salesInvoiceId"),
		PurchaseInvoiceID: r.Int("purchaseInvoiceId"),
		NewInvoiceStatus:  r.String("newInvoiceStatus"),
		Comment:           r.String("comment"),
		Date:              r.Time("date"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n StatusNotification) ToMap() map[string]any {
	w := writer{}
	w.Int("salesInvoiceId", n.SalesInvoiceID)
	w.Int("purchaseInvoiceId", n.PurchaseInvoiceID)
	w.String("newInvoiceStatus", n.NewInvoiceStatus)
	w.String("comment", n.Comment)
	w.Time("date", n.Date)
	return w
}

func (n StatusNotification) MarshalJSON() ([]byte, error) { return toJSON(n.ToMap()) }

func (n *StatusNotification) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, StatusNotificationFromMap)
	if err != nil {
		return err
	}
	*n = *v
	return nil
}
