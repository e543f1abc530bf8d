package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/internal/transport"
)

const salesBase = "/api/publicApi/sales-invoice"

// UblOptions are the query flags of UBL upload and import.
type UblOptions struct {
	// RequestID makes the call idempotent on the remote side. Sent only when set.
	RequestID string
	// SendToCir registers the invoice in the central invoice registry. Sent only when set.
	SendToCir model.SendToCir
	// SkipValidation disables remote validation of the document.
	SkipValidation bool
}

func (o UblOptions) query() url.Values {
	q := url.Values{}
	if o.RequestID != "" {
		q.Set("requestId", o.RequestID)
	}
	if o.SendToCir != "" {
		q.Set("sendToCir", string(o.SendToCir))
	}
	q.Set("executeValidation", boolString(!o.SkipValidation))
	return q
}

// SalesInvoiceService manages invoices issued by the account holder.
type SalesInvoiceService struct {
	client Transport
	ref    reference
	log    zerolog.Logger
}

func NewSalesInvoiceService(client Transport, opts ...Option) *SalesInvoiceService {
	s := applyOptions(opts)
	return &SalesInvoiceService{
		client: client,
		ref:    reference{cache: s.cache, cfg: s.cacheCfg},
		log:    s.log,
	}
}

// Get fetches a sales invoice by id.
func (s *SalesInvoiceService) Get(ctx context.Context, id int64) (*model.SalesInvoice, error) {
	p, err := s.client.Get(ctx, salesBase, transport.WithQuery(invoiceIDQuery(id)))
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "sales invoice", model.SalesInvoiceFromMap)
}

// FindByNumber is not available: the API has no lookup by invoice number.
// Use IDs with a filter and Get instead.
func (s *SalesInvoiceService) FindByNumber(_ context.Context, _ string) (*model.SalesInvoice, error) {
	return nil, ErrUnsupported
}

// UploadUbl uploads the UBL document at path as a multipart file.
func (s *SalesInvoiceService) UploadUbl(ctx context.Context, path string, opts UblOptions) (*model.MiniInvoice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return s.UploadUblReader(ctx, filepath.Base(path), f, opts)
}

// UploadUblReader uploads a UBL document read from r under filename.
func (s *SalesInvoiceService) UploadUblReader(ctx context.Context, filename string, r io.Reader, opts UblOptions) (*model.MiniInvoice, error) {
	parts := []transport.Part{{Name: "ublFile", Filename: filename, Content: r}}

	p, err := s.client.PostMultipart(ctx, salesBase+"/ubl/upload", parts, transport.WithQuery(opts.query()))
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "upload result", model.MiniInvoiceFromMap)
}

// ImportUbl posts UBL XML content directly.
func (s *SalesInvoiceService) ImportUbl(ctx context.Context, xml []byte, opts UblOptions) (*model.MiniInvoice, error) {
	p, err := s.client.PostRaw(ctx, salesBase+"/ubl", "application/xml", xml, transport.WithQuery(opts.query()))
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "import result", model.MiniInvoiceFromMap)
}

// ImportUblFromFile reads path and imports its content.
func (s *SalesInvoiceService) ImportUblFromFile(ctx context.Context, path string, opts UblOptions) (*model.MiniInvoice, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return s.ImportUbl(ctx, content, opts)
}

// DeleteMultiple deletes draft or new invoices and returns the deleted ids.
func (s *SalesInvoiceService) DeleteMultiple(ctx context.Context, ids []int64) ([]int64, error) {
	if ids == nil {
		ids = []int64{}
	}
	p, err := s.client.Delete(ctx, salesBase, ids)
	if err != nil {
		return nil, err
	}
	deleted, err := model.IDsFromList(p.List())
	if err != nil {
		return nil, fmt.Errorf("decode deleted ids: %w", err)
	}
	return deleted, nil
}

// Delete deletes one draft or new invoice. It returns the id the service
// reports, or id itself when the response carries none.
func (s *SalesInvoiceService) Delete(ctx context.Context, id int64) (int64, error) {
	p, err := s.client.Delete(ctx, fmt.Sprintf("%s/%d", salesBase, id), nil)
	if err != nil {
		return 0, err
	}

	list := p.List()
	if len(list) == 0 || list[0] == nil {
		return id, nil
	}
	deleted, err := model.IDsFromList(list[:1])
	if err != nil {
		return 0, fmt.Errorf("decode deleted id: %w", err)
	}
	return deleted[0], nil
}

// Cancel cancels an invoice. An empty comment is sent as null.
func (s *SalesInvoiceService) Cancel(ctx context.Context, id int64, comment string) (*model.InvoiceResult, error) {
	p, err := s.client.Post(ctx, salesBase+"/cancel", map[string]any{
		"invoiceId":      id,
		"cancelComments": optional(comment),
	})
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "cancel result", model.InvoiceResultFromMap)
}

// Storno reverses an invoice. An empty reason is sent as null.
func (s *SalesInvoiceService) Storno(ctx context.Context, id int64, reason string) (*model.InvoiceResult, error) {
	p, err := s.client.Post(ctx, salesBase+"/storno", map[string]any{
		"invoiceId":    id,
		"stornoReason": optional(reason),
	})
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "storno result", model.InvoiceResultFromMap)
}

func (s *SalesInvoiceService) Pdf(ctx context.Context, id int64) ([]byte, error) {
	return s.client.GetFile(ctx, salesBase+"/pdf", transport.WithQuery(invoiceIDQuery(id)))
}

func (s *SalesInvoiceService) Xml(ctx context.Context, id int64) ([]byte, error) {
	return s.client.GetFile(ctx, salesBase+"/xml", transport.WithQuery(invoiceIDQuery(id)))
}

func (s *SalesInvoiceService) Signature(ctx context.Context, id int64) ([]byte, error) {
	return s.client.GetFile(ctx, salesBase+"/signature", transport.WithQuery(invoiceIDQuery(id)))
}

// DownloadPdf saves the invoice PDF to path. A failed fetch is an error;
// a failed write is reported as false.
func (s *SalesInvoiceService) DownloadPdf(ctx context.Context, id int64, path string) (bool, error) {
	content, err := s.Pdf(ctx, id)
	if err != nil {
		return false, err
	}
	return saveFile(s.log, path, content), nil
}

// DownloadXml saves the invoice UBL XML to path.
func (s *SalesInvoiceService) DownloadXml(ctx context.Context, id int64, path string) (bool, error) {
	content, err := s.Xml(ctx, id)
	if err != nil {
		return false, err
	}
	return saveFile(s.log, path, content), nil
}

// Changes lists status changes on one day.
func (s *SalesInvoiceService) Changes(ctx context.Context, date time.Time) ([]model.SalesInvoiceStatusChange, error) {
	p, err := s.client.Post(ctx, salesBase+"/changes", nil, transport.WithQuery(dateQuery(date)))
	if err != nil {
		return nil, err
	}
	return decodeList(p, "sales changes", model.SalesInvoiceStatusChangeFromMap)
}

// IDs lists invoice ids matching f.
func (s *SalesInvoiceService) IDs(ctx context.Context, f Filter) (*model.InvoiceIDs, error) {
	p, err := s.client.Post(ctx, salesBase+"/ids", nil, transport.WithQuery(f.query()))
	if err != nil {
		return nil, err
	}
	return decodeObject(p, "sales invoice ids", model.InvoiceIDsFromMap)
}

// VatExemptionReasons lists VAT exemption codes. The list is cached.
func (s *SalesInvoiceService) VatExemptionReasons(ctx context.Context) ([]model.VatExemptionReason, error) {
	p, err := s.ref.load(ctx, keyVatExemptions, s.ref.cfg.VatExemptionsTTL, func(ctx context.Context) (*transport.Payload, error) {
		return s.client.Get(ctx, salesBase+"/getValueAddedTaxExemptionReasonList")
	})
	if err != nil {
		return nil, err
	}
	return decodeList(p, "vat exemption reasons", model.VatExemptionReasonFromMap)
}

func saveFile(log zerolog.Logger, path string, content []byte) bool {
	if err := os.WriteFile(path, content, 0o644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to save downloaded file")
		return false
	}
	return true
}
