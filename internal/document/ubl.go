// Package document inspects the UBL and PDF files exchanged with eFaktura
// without sending them anywhere.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// ErrNotUBL is returned for well-formed XML that is not a UBL invoice or credit note.
var ErrNotUBL = errors.New("not a UBL invoice document")

// UBL document roots accepted by the sales upload endpoints.
const (
	RootInvoice    = "Invoice"
	RootCreditNote = "CreditNote"
)

// Party is the subset of a UBL party shown to operators.
type Party struct {
	Name string `json:"name,omitempty"`
	Pib  string `json:"pib,omitempty"`
	Mb   string `json:"mb,omitempty"`
}

// UBLSummary is what InspectUBL reads out of a document.
type UBLSummary struct {
	DocumentType  string           `json:"documentType"`
	ID            string           `json:"id,omitempty"`
	IssueDate     string           `json:"issueDate,omitempty"`
	DueDate       string           `json:"dueDate,omitempty"`
	TypeCode      string           `json:"typeCode,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Supplier      Party            `json:"supplier"`
	Customer      Party            `json:"customer"`
	LineCount     int              `json:"lineCount"`
	PayableAmount *decimal.Decimal `json:"payableAmount,omitempty"`
	Signed        bool             `json:"signed"`
}

// InspectUBL parses a UBL 2.1 invoice and returns its header fields.
func InspectUBL(data []byte) (*UBLSummary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty XML document")
	}
	if root.Tag != RootInvoice && root.Tag != RootCreditNote {
		return nil, fmt.Errorf("%w: root element %q", ErrNotUBL, root.Tag)
	}

	s := &UBLSummary{
		DocumentType: root.Tag,
		ID:           text(root, "ID"),
		IssueDate:    text(root, "IssueDate"),
		DueDate:      text(root, "DueDate"),
		Currency:     text(root, "DocumentCurrencyCode"),
		Supplier:     party(root.FindElement("AccountingSupplierParty/Party")),
		Customer:     party(root.FindElement("AccountingCustomerParty/Party")),
		Signed:       root.FindElement(".//Signature") != nil,
	}
	if root.Tag == RootCreditNote {
		s.TypeCode = text(root, "CreditNoteTypeCode")
		s.LineCount = len(root.SelectElements("CreditNoteLine"))
	} else {
		s.TypeCode = text(root, "InvoiceTypeCode")
		s.LineCount = len(root.SelectElements("InvoiceLine"))
	}

	if el := root.FindElement("LegalMonetaryTotal/PayableAmount"); el != nil {
		amount, err := decimal.NewFromString(strings.TrimSpace(el.Text()))
		if err != nil {
			return nil, fmt.Errorf("invalid PayableAmount %q: %w", el.Text(), err)
		}
		s.PayableAmount = &amount
		if s.Currency == "" {
			s.Currency = el.SelectAttrValue("currencyID", "")
		}
	}

	return s, nil
}

func party(el *etree.Element) Party {
	if el == nil {
		return Party{}
	}
	p := Party{
		Name: text(el, "PartyLegalEntity/RegistrationName"),
		Mb:   text(el, "PartyLegalEntity/CompanyID"),
	}
	if p.Name == "" {
		p.Name = text(el, "PartyName/Name")
	}
	// Serbian PIBs are carried with an RS prefix in the tax scheme.
	pib := text(el, "PartyTaxScheme/CompanyID")
	if pib == "" {
		pib = text(el, "EndpointID")
	}
	p.Pib = strings.TrimPrefix(pib, "RS")
	return p
}

func text(el *etree.Element, path string) string {
	if found := el.FindElement(path); found != nil {
		return strings.TrimSpace(found.Text())
	}
	return ""
}
