package model_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efaktura/internal/model"
)

const salesInvoiceFixture = `{
	"salesInvoiceId": 1045,
	"invoiceNumber": "F-2024-17",
	"invoiceTypeCode": "380",
	"issueDate": "2024-03-01",
	"dueDate": "2024-03-31T00:00:00",
	"status": "Sent",
	"cirStatus": "ActiveCir",
	"cirInvoiceId": "CIR-88",
	"currencyCode": "RSD",
	"currencyExchangeRate": 1,
	"accountingSupplierParty": {"name": "Dobavljac d.o.o.", "pib": "100000001", "cityName": "Beograd"},
	"accountingCustomerParty": {"name": "Kupac a.d.", "pib": "100000002"},
	"taxExclusiveAmount": 1000.00,
	"taxInclusiveAmount": 1200.00,
	"payableAmount": 1200.00,
	"taxSubtotals": [
		{"taxableAmount": 1000, "taxAmount": 200, "percent": 20, "taxCategoryId": "S"}
	],
	"invoiceLines": [
		{"lineId": 1, "ordinalNumber": 1, "itemName": "Usluga", "invoicedQuantity": 2, "priceAmount": 250.5, "allowanceChargeIndicator": false},
		{"lineId": 2, "ordinalNumber": 2, "itemName": "Roba", "invoicedQuantity": 1, "priceAmount": 499, "classifiedTaxCategoryPercent": "20"},
		{"lineId": 3, "ordinalNumber": 3, "itemName": "Prevoz", "invoicedQuantity": 1, "priceAmount": 0}
	],
	"creationDate": "2024-03-01T09:15:30.125+01:00",
	"someFutureField": {"nested": true}
}`

func decodeFixture(t *testing.T, s string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return m
}

func TestSalesInvoiceFromMap(t *testing.T) {
	inv, err := model.SalesInvoiceFromMap(decodeFixture(t, salesInvoiceFixture))
	require.NoError(t, err)

	require.NotNil(t, inv.SalesInvoiceID)
	assert.Equal(t, int64(1045), *inv.SalesInvoiceID)
	assert.Equal(t, "F-2024-17", *inv.InvoiceNumber)
	assert.Equal(t, model.SalesStatusSent, *inv.Status)
	assert.Equal(t, model.CirStatusActive, *inv.CirStatus)
	assert.True(t, inv.PayableAmount.Equal(decimal.NewFromInt(1200)))

	require.NotNil(t, inv.IssueDate)
	assert.True(t, inv.IssueDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	require.NotNil(t, inv.AccountingSupplierParty)
	assert.Equal(t, "Beograd", *inv.AccountingSupplierParty.CityName)
	assert.Nil(t, inv.DeliveryParty)

	require.Len(t, inv.TaxSubtotals, 1)
	assert.True(t, inv.TaxSubtotals[0].Percent.Equal(decimal.NewFromInt(20)))

	require.Len(t, inv.InvoiceLines, 3)
	for i, line := range inv.InvoiceLines {
		assert.Equal(t, int64(i+1), *line.OrdinalNumber)
	}
	assert.Equal(t, "Roba", *inv.InvoiceLines[1].ItemName)
	assert.Equal(t, "20", *inv.InvoiceLines[1].ClassifiedTaxCategoryPercent)
	assert.False(t, *inv.InvoiceLines[0].AllowanceChargeIndicator)
}

func TestSalesInvoice_RoundTrip(t *testing.T) {
	inv, err := model.SalesInvoiceFromMap(decodeFixture(t, salesInvoiceFixture))
	require.NoError(t, err)

	first := inv.ToMap()
	again, err := model.SalesInvoiceFromMap(first)
	require.NoError(t, err)

	assert.Equal(t, first, again.ToMap())
	assert.NotContains(t, first, "someFutureField")
	assert.NotContains(t, first, "deliveryParty")
	assert.Equal(t, "2024-03-01T09:15:30+01:00", first["creationDate"])
	assert.Equal(t, json.Number("1200"), first["payableAmount"])
}

func TestSalesInvoice_JSONRoundTrip(t *testing.T) {
	inv, err := model.SalesInvoiceFromMap(decodeFixture(t, salesInvoiceFixture))
	require.NoError(t, err)

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	var decoded model.SalesInvoice
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, inv.ToMap(), decoded.ToMap())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "salesInvoiceId")
	assert.NotContains(t, raw, "SalesInvoiceID")
}

func TestToMap_OmitsNilFields(t *testing.T) {
	inv := model.PurchaseInvoice{
		InvoiceDocument: model.InvoiceDocument{
			InvoiceNumber: model.Ptr("UF-1"),
		},
	}

	m := inv.ToMap()
	assert.Equal(t, map[string]any{"invoiceNumber": "UF-1"}, m)

	empty := model.MiniCompany{}
	assert.Empty(t, empty.ToMap())
}

func TestToMap_KeepsZeroValues(t *testing.T) {
	res := model.AcceptRejectResponse{
		Success: model.Ptr(false),
		Message: model.Ptr(""),
	}

	assert.Equal(t, map[string]any{"success": false, "message": ""}, res.ToMap())
}

func TestFromMap_PascalCaseKeys(t *testing.T) {
	m := decodeFixture(t, `{"SalesInvoiceId": 5, "InvoiceNumber": "A-1", "Status": "Approved", "salesInvoiceid": 99}`)

	inv, err := model.MiniInvoiceFromMap(m)
	require.NoError(t, err)

	assert.Equal(t, "A-1", *inv.InvoiceNumber)
	assert.Equal(t, model.SalesStatusApproved, *inv.Status)
	require.NotNil(t, inv.SalesInvoiceID)
}

func TestFromMap_ExactKeyWins(t *testing.T) {
	m := map[string]any{"Message": "pascal", "message": "camel"}

	inv, err := model.MiniInvoiceFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, "camel", *inv.Message)
}

func TestFromMap_NullLeavesFieldUnset(t *testing.T) {
	m := decodeFixture(t, `{"invoiceNumber": null, "success": true}`)

	inv, err := model.MiniInvoiceFromMap(m)
	require.NoError(t, err)
	assert.Nil(t, inv.InvoiceNumber)
	assert.True(t, *inv.Success)
	assert.NotContains(t, inv.ToMap(), "invoiceNumber")
}

func TestFromMap_UnknownStatusPreserved(t *testing.T) {
	m := decodeFixture(t, `{"purchaseInvoiceId": 3, "status": "Archived", "cirStatus": "Frozen"}`)

	c, err := model.PurchaseInvoiceStatusChangeFromMap(m)
	require.NoError(t, err)

	assert.Equal(t, model.PurchaseInvoiceStatus("Archived"), *c.Status)
	assert.False(t, c.Status.Known())
	assert.Equal(t, "Archived", c.Status.Label())
	assert.Equal(t, "Frozen", c.ToMap()["cirStatus"])
}

func TestFromMap_TypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		typ   string
		field string
	}{
		{"object for int", `{"salesInvoiceId": {"id": 1}}`, "SalesInvoice", "salesInvoiceId"},
		{"list for string", `{"invoiceNumber": ["a"]}`, "SalesInvoice", "invoiceNumber"},
		{"bad date", `{"issueDate": "yesterday"}`, "SalesInvoice", "issueDate"},
		{"string for party", `{"payeeParty": "Firma"}`, "SalesInvoice", "payeeParty"},
		{"bad nested line", `{"invoiceLines": [{"priceAmount": "abc"}]}`, "InvoiceLine", "priceAmount"},
		{"scalar in list", `{"invoiceLines": [1]}`, "model.InvoiceLine", "[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.SalesInvoiceFromMap(decodeFixture(t, tt.body))
			require.Error(t, err)

			var fieldErr *model.FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.typ, fieldErr.Type)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestHydrateList_PreservesOrder(t *testing.T) {
	items := []any{
		map[string]any{"pib": "1", "name": "A"},
		map[string]any{"pib": "2", "name": "B"},
		map[string]any{"pib": "3", "name": "C"},
	}

	companies, err := model.HydrateList(items, model.MiniCompanyFromMap)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "A", *companies[0].Name)
	assert.Equal(t, "B", *companies[1].Name)
	assert.Equal(t, "C", *companies[2].Name)
}

func TestHydrateList_Empty(t *testing.T) {
	companies, err := model.HydrateList([]any{}, model.MiniCompanyFromMap)
	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}

func TestInvoiceIDs(t *testing.T) {
	ids, err := model.InvoiceIDsFromMap(decodeFixture(t, `{"invoiceIds": [10, 11, "12"]}`))
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 12}, ids.InvoiceIDs)
	assert.Equal(t, []any{int64(10), int64(11), int64(12)}, ids.ToMap()["invoiceIds"])
}

func TestAcceptRejectResponse_Nested(t *testing.T) {
	m := decodeFixture(t, `{"invoice": {"invoiceNumber": "UF-9", "status": "Approved"}, "success": true, "httpStatus": "200"}`)

	res, err := model.AcceptRejectResponseFromMap(m)
	require.NoError(t, err)
	require.NotNil(t, res.Invoice)
	assert.Equal(t, model.PurchaseStatusApproved, *res.Invoice.Status)
	assert.Equal(t, "200", *res.HTTPStatus)

	again, err := model.AcceptRejectResponseFromMap(res.ToMap())
	require.NoError(t, err)
	assert.Equal(t, res.ToMap(), again.ToMap())
}

func TestUnmarshalJSON_List(t *testing.T) {
	var reasons []model.VatExemptionReason
	err := json.Unmarshal([]byte(`[{"code":"PDV-RS-24-1-1","description":"Clan 24","taxCategory":"E"},{"code":"PDV-RS-25-1-1"}]`), &reasons)
	require.NoError(t, err)

	require.Len(t, reasons, 2)
	assert.Equal(t, "E", *reasons[0].TaxCategory)
	assert.Nil(t, reasons[1].Description)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:20:30", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"2024-03-01T10:20:30.1234567", time.Date(2024, 3, 1, 10, 20, 30, 123456700, time.UTC)},
		{"2024-03-01T10:20:30Z", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"2024-03-01T10:20:30+02:00", time.Date(2024, 3, 1, 8, 20, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}

	_, err := model.ParseTime("01.03.2024")
	assert.Error(t, err)
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	assert.Equal(t, "2024-03-01T10:00:00+01:00", model.FormatTime(time.Date(2024, 3, 1, 10, 0, 0, 0, loc)))
	assert.Equal(t, "2024-03-01T10:00:00+00:00", model.FormatTime(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	// Sub-second precision is not part of the wire format.
	assert.Equal(t, "2024-03-01T10:00:00+01:00", model.FormatTime(time.Date(2024, 3, 1, 10, 0, 0, 125000000, loc)))
}
