package service

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/internal/money"
	"github.com/rezonia/efaktura/internal/transport"
)

const purchaseBase = "/api/publicApi/purchase-invoice"

// PurchaseInvoiceService manages invoices received by the account holder.
type PurchaseInvoiceService struct {
	client Transport
	log    zerolog.Logger
}

func NewPurchaseInvoiceService(client Transport, opts ...Option) *PurchaseInvoiceService {
	s := applyOptions(opts)
	return &PurchaseInvoiceService{client: client, log: s.log}
}

// Get fetches a purchase invoice by id.
func (s *PurchaseInvoiceService) Get(ctx context.Context, id int64) (*model.PurchaseInvoice, error) {
	p, err := s.client.Get(ctx, purchaseBase, transport.WithQuery(invoiceIDQuery(id)))
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "purchase invoice", model.PurchaseInvoiceFromMap)
}

func (s *PurchaseInvoiceService) Pdf(ctx context.Context, id int64) ([]byte, error) {
	return s.client.GetFile(ctx, purchaseBase+"/pdf", transport.WithQuery(invoiceIDQuery(id)))
}

func (s *PurchaseInvoiceService) Xml(ctx context.Context, id int64) ([]byte, error) {
	return s.client.GetFile(ctx, purchaseBase+"/xml", transport.WithQuery(invoiceIDQuery(id)))
}

func (s *PurchaseInvoiceService) Signature(ctx context.Context, id int64) ([]byte, error) {
	return s.client.GetFile(ctx, purchaseBase+"/signature", transport.WithQuery(invoiceIDQuery(id)))
}

// UblByCirInvoiceID downloads the UBL document of a CIR registered invoice.
func (s *PurchaseInvoiceService) UblByCirInvoiceID(ctx context.Context, cirID string) ([]byte, error) {
	return s.client.GetFile(ctx, purchaseBase+"/ubl/"+url.PathEscape(cirID))
}

// DownloadPdf saves the invoice PDF to path. A failed fetch is an error;
// a failed write is reported as false.
func (s *PurchaseInvoiceService) DownloadPdf(ctx context.Context, id int64, path string) (bool, error) {
	content, err := s.Pdf(ctx, id)
	if err != nil {
		return false, err
	}
	return saveFile(s.log, path, content), nil
}

func (s *PurchaseInvoiceService) DownloadXml(ctx context.Context, id int64, path string) (bool, error) {
	content, err := s.Xml(ctx, id)
	if err != nil {
		return false, err
	}
	return saveFile(s.log, path, content), nil
}

// AcceptOrReject records the decision on a received invoice. An empty
// comment is sent as null.
func (s *PurchaseInvoiceService) AcceptOrReject(ctx context.Context, id int64, accepted bool, comment string) (*model.AcceptRejectResponse, error) {
	p, err := s.client.Post(ctx, purchaseBase+"/acceptRejectPurchaseInvoice", map[string]any{
		"invoiceId": id,
		"accepted":  accepted,
		"comment":   optional(comment),
	})
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "accept/reject response", model.AcceptRejectResponseFromMap)
}

func (s *PurchaseInvoiceService) Accept(ctx context.Context, id int64, comment string) (*model.AcceptRejectResponse, error) {
	return s.AcceptOrReject(ctx, id, true, comment)
}

func (s *PurchaseInvoiceService) Reject(ctx context.Context, id int64, comment string) (*model.AcceptRejectResponse, error) {
	return s.AcceptOrReject(ctx, id, false, comment)
}

// AcceptOrRejectByCirID is AcceptOrReject addressed by CIR invoice id.
func (s *PurchaseInvoiceService) AcceptOrRejectByCirID(ctx context.Context, cirID string, accepted bool, comment string) (*model.AcceptRejectResponse, error) {
	p, err := s.client.Post(ctx, purchaseBase+"/acceptRejectPurchaseInvoiceByCirInvoiceId", map[string]any{
		"cirInvoiceId": cirID,
		"accepted":     accepted,
		"comment":      optional(comment),
	})
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "accept/reject response", model.AcceptRejectResponseFromMap)
}

func (s *PurchaseInvoiceService) AcceptByCirID(ctx context.Context, cirID, comment string) (*model.AcceptRejectResponse, error) {
	return s.AcceptOrRejectByCirID(ctx, cirID, true, comment)
}

func (s *PurchaseInvoiceService) RejectByCirID(ctx context.Context, cirID, comment string) (*model.AcceptRejectResponse, error) {
	return s.AcceptOrRejectByCirID(ctx, cirID, false, comment)
}

// Changes lists status changes on one day.
func (s *PurchaseInvoiceService) Changes(ctx context.Context, date time.Time) ([]model.PurchaseInvoiceStatusChange, error) {
	p, err := s.client.Post(ctx, purchaseBase+"/changes", nil, transport.WithQuery(dateQuery(date)))
	if err != nil {
		return nil, err
	}
	return decodeList(p, "purchase changes", model.PurchaseInvoiceStatusChangeFromMap)
}

// IDs lists invoice ids matching f.
func (s *PurchaseInvoiceService) IDs(ctx context.Context, f Filter) (*model.InvoiceIDs, error) {
	p, err := s.client.Post(ctx, purchaseBase+"/ids", nil, transport.WithQuery(f.query()))
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "purchase invoice ids", model.InvoiceIDsFromMap)
}

// Overview lists received invoices matching f.
func (s *PurchaseInvoiceService) Overview(ctx context.Context, f Filter) ([]model.PurchaseInvoiceOverview, error) {
	p, err := s.client.Get(ctx, purchaseBase+"/overview", transport.WithQuery(f.query()))
	if err != nil {
		return nil, err
	}
	return decodeList(p, "purchase overview", model.PurchaseInvoiceOverviewFromMap)
}

// NewInvoices lists received invoices still in status New.
func (s *PurchaseInvoiceService) NewInvoices(ctx context.Context, from, to *time.Time) ([]model.PurchaseInvoiceOverview, error) {
	return s.Overview(ctx, Filter{
		Status:   string(model.PurchaseStatusNew),
		DateFrom: from,
		DateTo:   to,
	})
}

// RecordVatReverseCharge records the VAT amount calculated under reverse
// charge and returns the raw response object.
func (s *PurchaseInvoiceService) RecordVatReverseCharge(ctx context.Context, id int64, vatAmount decimal.Decimal, comment string) (map[string]any, error) {
	p, err := s.client.Post(ctx, purchaseBase+"/vatReverseCharge", map[string]any{
		"purchaseInvoiceId": id,
		"vatAmount":         money.Number(vatAmount),
		"comment":           optional(comment),
	})
	if err != nil {
		return nil, err
	}
	return responseMap(p), nil
}

// AssignCirInvoice assigns a CIR invoice to another budget user. Empty
// arguments are left out of the query.
func (s *PurchaseInvoiceService) AssignCirInvoice(ctx context.Context, cirID, assignerPartyJBKJS, contractNumber string) (*model.PurchaseInvoiceAssignment, error) {
	q := url.Values{}
	if assignerPartyJBKJS != "" {
		q.Set("AssignerPartyJBKJS", assignerPartyJBKJS)
	}
	if contractNumber != "" {
		q.Set("AssignationContractNumber", contractNumber)
	}

	p, err := s.client.Post(ctx, purchaseBase+"/"+url.PathEscape(cirID)+"/assign", nil, transport.WithQuery(q))
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "cir assignment", model.PurchaseInvoiceAssignmentFromMap)
}

// CancelCirAssignment reverts AssignCirInvoice.
func (s *PurchaseInvoiceService) CancelCirAssignment(ctx context.Context, cirID string) (*model.PurchaseInvoiceAssignment, error) {
	p, err := s.client.Get(ctx, purchaseBase+"/"+url.PathEscape(cirID)+"/cancelassign")
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "cir assignment", model.PurchaseInvoiceAssignmentFromMap)
}

// responseMap returns an object payload, or an empty map for anything else.
func responseMap(p *transport.Payload) map[string]any {
	if m := p.Map(); m != nil {
		return m
	}
	return map[string]any{}
}
