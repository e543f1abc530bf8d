package document_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efaktura/internal/document"
)

const sampleInvoice = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
         xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
         xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>INV-2024-001</cbc:ID>
  <cbc:IssueDate>2024-03-01</cbc:IssueDate>
  <cbc:DueDate>2024-03-31</cbc:DueDate>
  <cbc:InvoiceTypeCode>380</cbc:InvoiceTypeCode>
  <cbc:DocumentCurrencyCode>RSD</cbc:DocumentCurrencyCode>
  <cac:AccountingSupplierParty>
    <cac:Party>
      <cbc:EndpointID schemeID="9948">101134702</cbc:EndpointID>
      <cac:PartyName><cbc:Name>Prodavac DOO</cbc:Name></cac:PartyName>
      <cac:PartyTaxScheme>
        <cbc:CompanyID>RS101134702</cbc:CompanyID>
      </cac:PartyTaxScheme>
      <cac:PartyLegalEntity>
        <cbc:RegistrationName>Prodavac DOO Beograd</cbc:RegistrationName>
        <cbc:CompanyID>07042965</cbc:CompanyID>
      </cac:PartyLegalEntity>
    </cac:Party>
  </cac:AccountingSupplierParty>
  <cac:AccountingCustomerParty>
    <cac:Party>
      <cbc:EndpointID schemeID="9948">100000024</cbc:EndpointID>
      <cac:PartyName><cbc:Name>Kupac AD</cbc:Name></cac:PartyName>
    </cac:Party>
  </cac:AccountingCustomerParty>
  <cac:LegalMonetaryTotal>
    <cbc:PayableAmount currencyID="RSD">1200.50</cbc:PayableAmount>
  </cac:LegalMonetaryTotal>
  <cac:InvoiceLine><cbc:ID>1</cbc:ID></cac:InvoiceLine>
  <cac:InvoiceLine><cbc:ID>2</cbc:ID></cac:InvoiceLine>
</Invoice>`

func TestInspectUBL_Invoice(t *testing.T) {
	s, err := document.InspectUBL([]byte(sampleInvoice))
	require.NoError(t, err)

	assert.Equal(t, document.RootInvoice, s.DocumentType)
	assert.Equal(t, "INV-2024-001", s.ID)
	assert.Equal(t, "2024-03-01", s.IssueDate)
	assert.Equal(t, "2024-03-31", s.DueDate)
	assert.Equal(t, "380", s.TypeCode)
	assert.Equal(t, "RSD", s.Currency)
	assert.Equal(t, 2, s.LineCount)
	assert.False(t, s.Signed)

	assert.Equal(t, "Prodavac DOO Beograd", s.Supplier.Name)
	assert.Equal(t, "101134702", s.Supplier.Pib)
	assert.Equal(t, "07042965", s.Supplier.Mb)

	assert.Equal(t, "Kupac AD", s.Customer.Name)
	assert.Equal(t, "100000024", s.Customer.Pib)

	require.NotNil(t, s.PayableAmount)
	assert.Equal(t, "1200.5", s.PayableAmount.String())
}

func TestInspectUBL_CreditNote(t *testing.T) {
	xml := `<CreditNote xmlns:cbc="urn:cbc" xmlns:cac="urn:cac">
  <cbc:ID>CN-7</cbc:ID>
  <cbc:CreditNoteTypeCode>381</cbc:CreditNoteTypeCode>
  <cac:LegalMonetaryTotal><cbc:PayableAmount currencyID="EUR">10</cbc:PayableAmount></cac:LegalMonetaryTotal>
  <cac:CreditNoteLine/>
</CreditNote>`

	s, err := document.InspectUBL([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, document.RootCreditNote, s.DocumentType)
	assert.Equal(t, "381", s.TypeCode)
	assert.Equal(t, 1, s.LineCount)
	// Falls back to the amount's currency attribute.
	assert.Equal(t, "EUR", s.Currency)
}

func TestInspectUBL_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "<Invoice><ID></Invoice>"},
		{"empty", ""},
		{"wrong root", "<Order><ID>1</ID></Order>"},
		{"bad amount", "<Invoice><LegalMonetaryTotal><PayableAmount>abc</PayableAmount></LegalMonetaryTotal></Invoice>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.InspectUBL([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := document.InspectUBL([]byte("<Order/>"))
	assert.True(t, errors.Is(err, document.ErrNotUBL))
}

func TestPDFPageCount_Invalid(t *testing.T) {
	_, err := document.PDFPageCount(nil)
	assert.ErrorIs(t, err, document.ErrEmptyPDF)

	_, err = document.PDFPageCount([]byte("definitely not a pdf"))
	assert.Error(t, err)
}
