package model

// MiniInvoice is returned by UBL import and upload.
type MiniInvoice struct {
	SalesInvoiceID    *int64
	PurchaseInvoiceID *int64
	InvoiceNumber     *string
	Status            *SalesInvoiceStatus
	CirInvoiceID      *string
	CirStatus         *CirInvoiceStatus
	RequestID         *string
	Message           *string
	Success           *bool
}

func MiniInvoiceFromMap(m map[string]any) (*MiniInvoice, error) {
	r := newReader("MiniInvoice", m)
	inv := &MiniInvoice{
		SalesInvoiceID:    r.Int("salesInvoiceId"),
		PurchaseInvoiceID: r.Int("purchaseInvoiceId"),
		InvoiceNumber:     r.String("invoiceNumber"),
		Status:            readEnum[SalesInvoiceStatus](r, "status"),
		CirInvoiceID:      r.String("cirInvoiceId"),
		CirStatus:         readEnum[CirInvoiceStatus](r, "cirStatus"),
		RequestID:         r.String("requestId"),
		Message:           r.String("message"),
		Success:           r.Bool("success"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (inv MiniInvoice) ToMap() map[string]any {
	w := writer{}
	w.Int("salesInvoiceId", inv.SalesInvoiceID)
	w.Int("purchaseInvoiceId", inv.PurchaseInvoiceID)
	w.String("invoiceNumber", inv.InvoiceNumber)
	writeEnum(w, "status", inv.Status)
	w.String("cirInvoiceId", inv.CirInvoiceID)
	writeEnum(w, "cirStatus", inv.CirStatus)
	w.String("requestId", inv.RequestID)
	w.String("message", inv.Message)
	w.Bool("success", inv.Success)
	return w
}

func (inv MiniInvoice) MarshalJSON() ([]byte, error) { return toJSON(inv.ToMap()) }

func (inv *MiniInvoice) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, MiniInvoiceFromMap)
	if err != nil {
		return err
	}
	*inv = *v
	return nil
}

// InvoiceResult is returned by sales invoice cancel and storno.
type InvoiceResult struct {
	InvoiceID     *int64
	InvoiceNumber *string
	Status        *SalesInvoiceStatus
	CirInvoiceID  *string
	CirStatus     *CirInvoiceStatus
	Message       *string
	Success       *bool
}

func InvoiceResultFromMap(m map[string]any) (*InvoiceResult, error) {
	r := newReader("InvoiceResult", m)
	res := &InvoiceResult{
		InvoiceID:     r.Int("invoiceId"),
		InvoiceNumber: r.String("invoiceNumber"),
		Status:        readEnum[SalesInvoiceStatus](r, "status"),
		CirInvoiceID:  r.String("cirInvoiceId"),
		CirStatus:     readEnum[CirInvoiceStatus](r, "cirStatus"),
		Message:       r.String("message"),
		Success:       r.Bool("success"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (res InvoiceResult) ToMap() map[string]any {
	w := writer{}
	w.Int("invoiceId", res.InvoiceID)
	w.String("invoiceNumber", res.InvoiceNumber)
	writeEnum(w, "status", res.Status)
	w.String("cirInvoiceId", res.CirInvoiceID)
	writeEnum(w, "cirStatus", res.CirStatus)
	w.String("message", res.Message)
	w.Bool("success", res.Success)
	return w
}

func (res InvoiceResult) MarshalJSON() ([]byte, error) { return toJSON(res.ToMap()) }

func (res *InvoiceResult) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, InvoiceResultFromMap)
	if err != nil {
		return err
	}
	*res = *v
	return nil
}

// ChangeStatusInvoice is the invoice part of an accept/reject response.
type ChangeStatusInvoice struct {
	InvoiceNumber *string
	Status        *PurchaseInvoiceStatus
}

func ChangeStatusInvoiceFromMap(m map[string]any) (*ChangeStatusInvoice, error) {
	r := newReader("ChangeStatusInvoice", m)
	inv := &ChangeStatusInvoice{
		InvoiceNumber: r.String("invoiceNumber"),
		Status:        readEnum[PurchaseInvoiceStatus](r, "status"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (inv ChangeStatusInvoice) ToMap() map[string]any {
	w := writer{}
	w.String("invoiceNumber", inv.InvoiceNumber)
	writeEnum(w, "status", inv.Status)
	return w
}

func (inv ChangeStatusInvoice) MarshalJSON() ([]byte, error) { return toJSON(inv.ToMap()) }

func (inv *ChangeStatusInvoice) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, ChangeStatusInvoiceFromMap)
	if err != nil {
		return err
	}
	*inv = *v
	return nil
}

// AcceptRejectResponse is returned when a purchase invoice is accepted or rejected.
type AcceptRejectResponse struct {
	Invoice *ChangeStatusInvoice
	Success *bool
	Message *string
	// The service reports the status code as a string.
	HTTPStatus *string
}

func AcceptRejectResponseFromMap(m map[string]any) (*AcceptRejectResponse, error) {
	r := newReader("AcceptRejectResponse", m)
	res := &AcceptRejectResponse{
		Invoice:    readObject(r, "invoice", ChangeStatusInvoiceFromMap),
		Success:    r.Bool("success"),
		Message:    r.String("message"),
		HTTPStatus: r.String("httpStatus"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (res AcceptRejectResponse) ToMap() map[string]any {
	w := writer{}
	if res.Invoice != nil {
		w["invoice"] = res.Invoice.ToMap()
	}
	w.Bool("success", res.Success)
	w.String("message", res.Message)
	w.String("httpStatus", res.HTTPStatus)
	return w
}

func (res AcceptRejectResponse) MarshalJSON() ([]byte, error) { return toJSON(res.ToMap()) }

func (res *AcceptRejectResponse) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, AcceptRejectResponseFromMap)
	if err != nil {
		return err
	}
	*res = *v
	return nil
}

// PurchaseInvoiceAssignment is returned by CIR assignment operations.
type PurchaseInvoiceAssignment struct {
	PurchaseInvoiceID         *int64
	InvoiceNumber             *string
	Status                    *PurchaseInvoiceStatus
	CirInvoiceID              *string
	CirStatus                 *CirInvoiceStatus
	AssignerPartyJBKJS        *string
	AssignationContractNumber *string
	Success                   *bool
	Message                   *string
}

func PurchaseInvoiceAssignmentFromMap(m map[string]any) (*PurchaseInvoiceAssignment, error) {
	r := newReader("PurchaseInvoiceAssignment", m)
	a := &PurchaseInvoiceAssignment{
		PurchaseInvoiceID:         r.Int("purchaseInvoiceId"),
		InvoiceNumber:             r.String("invoiceNumber"),
		Status:                    readEnum[PurchaseInvoiceStatus](r, "status"),
		CirInvoiceID:              r.String("cirInvoiceId"),
		CirStatus:                 readEnum[CirInvoiceStatus](r, "cirStatus"),
		AssignerPartyJBKJS:        r.String("assignerPartyJBKJS"),
		AssignationContractNumber: r.String("assignationContractNumber"),
		Success:                   r.Bool("success"),
		Message:                   r.String("message"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a PurchaseInvoiceAssignment) ToMap() map[string]any {
	w := writer{}
	w.Int("purchaseInvoiceId", a.PurchaseInvoiceID)
	w.String("invoiceNumber", a.InvoiceNumber)
	writeEnum(w, "status", a.Status)
	w.String("cirInvoiceId", a.CirInvoiceID)
	writeEnum(w, "cirStatus", a.CirStatus)
	w.String("assignerPartyJBKJS", a.AssignerPartyJBKJS)
	w.String("assignationContractNumber", a.AssignationContractNumber)
	w.Bool("success", a.Success)
	w.String("message", a.Message)
	return w
}

func (a PurchaseInvoiceAssignment) MarshalJSON() ([]byte, error) { return toJSON(a.ToMap()) }

func (a *PurchaseInvoiceAssignment) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, PurchaseInvoiceAssignmentFromMap)
	if err != nil {
		return err
	}
	*a = *v
	return nil
}

// InvoiceIDs is the result of an ids query.
type InvoiceIDs struct {
	InvoiceIDs []int64
}

func InvoiceIDsFromMap(m map[string]any) (*InvoiceIDs, error) {
	r := newReader("InvoiceIDs", m)
	ids := &InvoiceIDs{
		InvoiceIDs: r.Ints("invoiceIds"),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (ids InvoiceIDs) ToMap() map[string]any {
	w := writer{}
	w.Ints("invoiceIds", ids.InvoiceIDs)
	return w
}

func (ids InvoiceIDs) MarshalJSON() ([]byte, error) { return toJSON(ids.ToMap()) }

func (ids *InvoiceIDs) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, InvoiceIDsFromMap)
	if err != nil {
		return err
	}
	*ids = *v
	return nil
}
