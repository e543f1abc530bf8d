package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceDocument is the body shared by sales and purchase invoice snapshots.
type InvoiceDocument struct {
	InvoiceNumber        *string
	InvoiceTypeCode      *string
	InvoiceTypeName      *string
	IssueDate            *time.Time
	DueDate              *time.Time
	TaxPointDate         *time.Time
	CurrencyCode         *string
	DocumentCurrencyCode *string
	CurrencyExchangeRate *decimal.Decimal
	CirInvoiceID         *string
	CirStatus            *CirInvoiceStatus
	Note                 *string

	PaymentMeansCode   *string
	PaymentID          *string
	PaymentAccountID   *string
	PaymentAccountName *string

	ContractDocumentReference   *string
	OrderReference              *string
	OriginatorDocumentReference *string
	PurchaseOrderReference      *string
	SalesOrderReference         *string
	DespatchDocumentReference   *string
	ReceiptDocumentReference    *string
	AdditionalDocumentReference *string
	BillingReferenceInvoiceID   *string
	BillingReferenceIssueDate   *time.Time

	AccountingSupplierParty *Party
	AccountingCustomerParty *Party
	DeliveryParty           *Party
	PayeeParty              *Party

	TaxExclusiveAmount    *decimal.Decimal
	TaxInclusiveAmount    *decimal.Decimal
	AllowanceTotalAmount  *decimal.Decimal
	ChargeTotalAmount     *decimal.Decimal
	PrepaidAmount         *decimal.Decimal
	PayableRoundingAmount *decimal.Decimal
	PayableAmount         *decimal.Decimal

	TaxSubtotals []TaxSubtotal
	InvoiceLines []InvoiceLine

	CreationDate     *time.Time
	LastModifiedDate *time.Time
	DeliveredDate    *time.Time
	SeenDate         *time.Time
	ApprovedDate     *time.Time
	RejectedDate     *time.Time
	CancelledDate    *time.Time

	CancelComments  *string
	RejectComments  *string
	ApproveComments *string
}

func readDocument(r *reader) InvoiceDocument {
	return InvoiceDocument{
		InvoiceNumber:        r.String("invoiceNumber"),
		InvoiceTypeCode:      r.String("invoiceTypeCode"),
		InvoiceTypeName:      r.String("invoiceTypeName"),
		IssueDate:            r.Time("issueDate"),
		DueDate:              r.Time("dueDate"),
		TaxPointDate:         r.Time("taxPointDate"),
		CurrencyCode:         r.String("currencyCode"),
		DocumentCurrencyCode: r.String("documentCurrencyCode"),
		CurrencyExchangeRate: r.Decimal("currencyExchangeRate"),
		CirInvoiceID:         r.String("cirInvoiceId"),
		CirStatus:            readEnum[CirInvoiceStatus](r, "cirStatus"),
		Note:                 r.String("note"),

		PaymentMeansCode:   r.String("paymentMeansCode"),
		PaymentID:          r.String("paymentId"),
		PaymentAccountID:   r.String("paymentAccountId"),
		PaymentAccountName: r.String("paymentAccountName"),

		ContractDocumentReference:   r.String("contractDocumentReference"),
		OrderReference:              r.String("orderReference"),
		OriginatorDocumentReference: r.String("originatorDocumentReference"),
		PurchaseOrderReference:      r.String("purchaseOrderReference"),
		SalesOrderReference:         r.String("salesOrderReference"),
		DespatchDocumentReference:   r.String("despatchDocumentReference"),
		ReceiptDocumentReference:    r.String("receiptDocumentReference"),
		AdditionalDocumentReference: r.String("additionalDocumentReference"),
		BillingReferenceInvoiceID:   r.String("billingReferenceInvoiceId"),
		BillingReferenceIssueDate:   r.Time("billingReferenceIssueDate"),

		AccountingSupplierParty: readObject(r, "accountingSupplierParty", PartyFromMap),
		AccountingCustomerParty: readObject(r, "accountingCustomerParty", PartyFromMap),
		DeliveryParty:           readObject(r, "deliveryParty", PartyFromMap),
		PayeeParty:              readObject(r, "payeeParty", PartyFromMap),

		TaxExclusiveAmount:    r.Decimal("taxExclusiveAmount"),
		TaxInclusiveAmount:    r.Decimal("taxInclusiveAmount"),
		AllowanceTotalAmount:  r.Decimal("allowanceTotalAmount"),
		ChargeTotalAmount:     r.Decimal("chargeTotalAmount"),
		PrepaidAmount:         r.Decimal("prepaidAmount"),
		PayableRoundingAmount: r.Decimal("payableRoundingAmount"),
		PayableAmount:         r.Decimal("payableAmount"),

		TaxSubtotals: readList(r, "taxSubtotals", TaxSubtotalFromMap),
		InvoiceLines: readList(r, "invoiceLines", InvoiceLineFromMap),

		CreationDate:     r.Time("creationDate"),
		LastModifiedDate: r.Time("lastModifiedDate"),
		DeliveredDate:    r.Time("deliveredDate"),
		SeenDate:         r.Time("seenDate"),
		ApprovedDate:     r.Time("approvedDate"),
		RejectedDate:     r.Time("rejectedDate"),
		CancelledDate:    r.Time("cancelledDate"),

		CancelComments:  r.String("cancelComments"),
		RejectComments:  r.String("rejectComments"),
		ApproveComments: r.String("approveComments"),
	}
}

func (d InvoiceDocument) write(w writer) {
	w.String("invoiceNumber", d.InvoiceNumber)
	w.String("invoiceTypeCode", d.InvoiceTypeCode)
	w.String("invoiceTypeName", d.InvoiceTypeName)
	w.Time("issueDate", d.IssueDate)
	w.Time("dueDate", d.DueDate)
	w.Time("taxPointDate", d.TaxPointDate)
	w.String("currencyCode", d.CurrencyCode)
	w.String("documentCurrencyCode", d.DocumentCurrencyCode)
	w.Decimal("currencyExchangeRate", d.CurrencyExchangeRate)
	w.String("cirInvoiceId", d.CirInvoiceID)
	writeEnum(w, "cirStatus", d.CirStatus)
	w.String("note", d.Note)

	w.String("paymentMeansCode", d.PaymentMeansCode)
	w.String("paymentId", d.PaymentID)
	w.String("paymentAccountId", d.PaymentAccountID)
	w.String("paymentAccountName", d.PaymentAccountName)

	w.String("contractDocumentReference", d.ContractDocumentReference)
	w.String("orderReference", d.OrderReference)
	w.String("originatorDocumentReference", d.OriginatorDocumentReference)
	w.String("purchaseOrderReference", d.PurchaseOrderReference)
	w.String("salesOrderReference", d.SalesOrderReference)
	w.String("despatchDocumentReference", d.DespatchDocumentReference)
	w.String("receiptDocumentReference", d.ReceiptDocumentReference)
	w.String("additionalDocumentReference", d.AdditionalDocumentReference)
	w.String("billingReferenceInvoiceId", d.BillingReferenceInvoiceID)
	w.Time("billingReferenceIssueDate", d.BillingReferenceIssueDate)

	if d.AccountingSupplierParty != nil {
		w["accountingSupplierParty"] = d.AccountingSupplierParty.ToMap()
	}
	if d.AccountingCustomerParty != nil {
		w["accountingCustomerParty"] = d.AccountingCustomerParty.ToMap()
	}
	if d.DeliveryParty != nil {
		w["deliveryParty"] = d.DeliveryParty.ToMap()
	}
	if d.PayeeParty != nil {
		w["payeeParty"] = d.PayeeParty.ToMap()
	}

	w.Decimal("taxExclusiveAmount", d.TaxExclusiveAmount)
	w.Decimal("taxInclusiveAmount", d.TaxInclusiveAmount)
	w.Decimal("allowanceTotalAmount", d.AllowanceTotalAmount)
	w.Decimal("chargeTotalAmount", d.ChargeTotalAmount)
	w.Decimal("prepaidAmount", d.PrepaidAmount)
	w.Decimal("payableRoundingAmount", d.PayableRoundingAmount)
	w.Decimal("payableAmount", d.PayableAmount)

	writeList(w, "taxSubtotals", d.TaxSubtotals)
	writeList(w, "invoiceLines", d.InvoiceLines)

	w.Time("creationDate", d.CreationDate)
	w.Time("lastModifiedDate", d.LastModifiedDate)
	w.Time("deliveredDate", d.DeliveredDate)
	w.Time("seenDate", d.SeenDate)
	w.Time("approvedDate", d.ApprovedDate)
	w.Time("rejectedDate", d.RejectedDate)
	w.Time("cancelledDate", d.CancelledDate)

	w.String("cancelComments", d.CancelComments)
	w.String("rejectComments", d.RejectComments)
	w.String("approveComments", d.ApproveComments)
}

// SalesInvoice is a snapshot of an invoice the company issued.
type SalesInvoice struct {
	SalesInvoiceID *int64
	Status         *SalesInvoiceStatus
	InvoiceDocument
}

func SalesInvoiceFromMap(m map[string]any) (*SalesInvoice, error) {
	r := newReader("SalesInvoice", m)
	inv := &SalesInvoice{
		SalesInvoiceID:  r.Int("salesInvoiceId"),
		Status:          readEnum[SalesInvoiceStatus](r, "status"),
		InvoiceDocument: readDocument(r),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (inv SalesInvoice) ToMap() map[string]any {
	w := writer{}
	w.Int("salesInvoiceId", inv.SalesInvoiceID)
	writeEnum(w, "status", inv.Status)
	inv.InvoiceDocument.write(w)
	return w
}

func (inv SalesInvoice) MarshalJSON() ([]byte, error) { return toJSON(inv.ToMap()) }

func (inv *SalesInvoice) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, SalesInvoiceFromMap)
	if err != nil {
		return err
	}
	*inv = *v
	return nil
}

// PurchaseInvoice is a snapshot of an invoice the company received.
type PurchaseInvoice struct {
	PurchaseInvoiceID *int64
	Status            *PurchaseInvoiceStatus
	InvoiceDocument
}

func PurchaseInvoiceFromMap(m map[string]any) (*PurchaseInvoice, error) {
	r := newReader("PurchaseInvoice", m)
	inv := &PurchaseInvoice{
		PurchaseInvoiceID: r.Int("purchaseInvoiceId"),
		Status:            readEnum[PurchaseInvoiceStatus](r, "status"),
		InvoiceDocument:   readDocument(r),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (inv PurchaseInvoice) ToMap() map[string]any {
	w := writer{}
	w.Int("purchaseInvoiceId", inv.PurchaseInvoiceID)
	writeEnum(w, "status", inv.Status)
	inv.InvoiceDocument.write(w)
	return w
}

func (inv PurchaseInvoice) MarshalJSON() ([]byte, error) { return toJSON(inv.ToMap()) }

func (inv *PurchaseInvoice) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, PurchaseInvoiceFromMap)
	if err != nil {
		return err
	}
	*inv = *v
	return nil
}
