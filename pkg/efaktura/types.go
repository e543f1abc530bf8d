package efaktura

import (
	"github.com/rezonia/efaktura/internal/config"
	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/internal/service"
	"github.com/rezonia/efaktura/internal/transport"
)

// Re-export configuration
type Config = config.Config

// LoadConfig reads configuration from the environment and an optional file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Re-export data objects
type (
	SalesInvoice                = model.SalesInvoice
	PurchaseInvoice             = model.PurchaseInvoice
	InvoiceDocument             = model.InvoiceDocument
	InvoiceLine                 = model.InvoiceLine
	TaxSubtotal                 = model.TaxSubtotal
	Party                       = model.Party
	MiniInvoice                 = model.MiniInvoice
	InvoiceResult               = model.InvoiceResult
	InvoiceIDs                  = model.InvoiceIDs
	AcceptRejectResponse        = model.AcceptRejectResponse
	ChangeStatusInvoice         = model.ChangeStatusInvoice
	PurchaseInvoiceAssignment   = model.PurchaseInvoiceAssignment
	SalesInvoiceStatusChange    = model.SalesInvoiceStatusChange
	PurchaseInvoiceStatusChange = model.PurchaseInvoiceStatusChange
	PurchaseInvoiceOverview     = model.PurchaseInvoiceOverview
	StatusNotification          = model.StatusNotification
	MiniCompany                 = model.MiniCompany
	CompanyAccount              = model.CompanyAccount
	Version                     = model.Version
	UnitMeasure                 = model.UnitMeasure
	VatExemptionReason          = model.VatExemptionReason
)

// Re-export enumerations
type (
	SalesInvoiceStatus    = model.SalesInvoiceStatus
	PurchaseInvoiceStatus = model.PurchaseInvoiceStatus
	CirInvoiceStatus      = model.CirInvoiceStatus
	SendToCir             = model.SendToCir
)

const (
	SalesStatusDraft     = model.SalesStatusDraft
	SalesStatusNew       = model.SalesStatusNew
	SalesStatusSent      = model.SalesStatusSent
	SalesStatusDelivered = model.SalesStatusDelivered
	SalesStatusMistake   = model.SalesStatusMistake
	SalesStatusApproved  = model.SalesStatusApproved
	SalesStatusRejected  = model.SalesStatusRejected
	SalesStatusCancelled = model.SalesStatusCancelled
	SalesStatusStorno    = model.SalesStatusStorno
	SalesStatusSending   = model.SalesStatusSending
)

const (
	PurchaseStatusNew                     = model.PurchaseStatusNew
	PurchaseStatusSeen                    = model.PurchaseStatusSeen
	PurchaseStatusApproved                = model.PurchaseStatusApproved
	PurchaseStatusRejected                = model.PurchaseStatusRejected
	PurchaseStatusCancelled               = model.PurchaseStatusCancelled
	PurchaseStatusStorno                  = model.PurchaseStatusStorno
	PurchaseStatusUnsuccessfullyDelivered = model.PurchaseStatusUnsuccessfullyDelivered
)

const (
	SendToCirYes = model.SendToCirYes
	SendToCirNo  = model.SendToCirNo
)

// Re-export request options
type (
	UblOptions    = service.UblOptions
	Filter        = service.Filter
	CompanyLookup = service.CompanyLookup
)

// Re-export error types
type (
	APIError     = transport.Error
	RequestError = transport.RequestError
	FileError    = service.FileError
	FieldError   = model.FieldError
)

var ErrUnsupported = service.ErrUnsupported

// StatusCode returns the HTTP status of an API error.
func StatusCode(err error) (int, bool) {
	return transport.StatusCode(err)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return transport.IsNotFound(err)
}
