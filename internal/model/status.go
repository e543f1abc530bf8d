package model

// SalesInvoiceStatus is the seller-side lifecycle status. Values the client
// does not know are kept as-is.
type SalesInvoiceStatus string

const (
	SalesStatusDraft     SalesInvoiceStatus = "Draft"
	SalesStatusNew       SalesInvoiceStatus = "New"
	SalesStatusSent      SalesInvoiceStatus = "Sent"
	SalesStatusDelivered SalesInvoiceStatus = "Delivered"
	SalesStatusMistake   SalesInvoiceStatus = "Mistake"
	SalesStatusApproved  SalesInvoiceStatus = "Approved"
	SalesStatusRejected  SalesInvoiceStatus = "Rejected"
	SalesStatusCancelled SalesInvoiceStatus = "Cancelled"
	SalesStatusStorno    SalesInvoiceStatus = "Storno"
	SalesStatusSending   SalesInvoiceStatus = "Sending"
)

var salesStatusLabels = map[SalesInvoiceStatus]string{
	SalesStatusDraft:     "Nacrt",
	SalesStatusNew:       "Nova",
	SalesStatusSent:      "Poslata",
	SalesStatusDelivered: "Isporučena",
	SalesStatusMistake:   "Greška",
	SalesStatusApproved:  "Odobrena",
	SalesStatusRejected:  "Odbijena",
	SalesStatusCancelled: "Otkazana",
	SalesStatusStorno:    "Stornirana",
	SalesStatusSending:   "U slanju",
}

// SalesInvoiceStatuses lists the known sales statuses in lifecycle order.
func SalesInvoiceStatuses() []SalesInvoiceStatus {
	return []SalesInvoiceStatus{
		SalesStatusDraft, SalesStatusNew, SalesStatusSending, SalesStatusSent, SalesStatusDelivered,
		SalesStatusMistake, SalesStatusApproved, SalesStatusRejected, SalesStatusCancelled, SalesStatusStorno,
	}
}

func (s SalesInvoiceStatus) String() string { return string(s) }

// Label returns the Serbian display name, or the raw value when unknown.
func (s SalesInvoiceStatus) Label() string {
	if l, ok := salesStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s SalesInvoiceStatus) Known() bool {
	_, ok := salesStatusLabels[s]
	return ok
}

// IsFinal reports whether no further status change is expected.
func (s SalesInvoiceStatus) IsFinal() bool {
	switch s {
	case SalesStatusApproved, SalesStatusRejected, SalesStatusCancelled, SalesStatusStorno:
		return true
	}
	return false
}

// PurchaseInvoiceStatus is the buyer-side lifecycle status.
type PurchaseInvoiceStatus string

const (
	PurchaseStatusNew       PurchaseInvoiceStatus = "New"
	PurchaseStatusSeen      PurchaseInvoiceStatus = "Seen"
	PurchaseStatusApproved  PurchaseInvoiceStatus = "Approved"
	PurchaseStatusRejected  PurchaseInvoiceStatus = "Rejected"
	PurchaseStatusCancelled PurchaseInvoiceStatus = "Cancelled"
	PurchaseStatusStorno    PurchaseInvoiceStatus = "Storno"
	// The remote service spells this value with a single "s".
	PurchaseStatusUnsuccessfullyDelivered PurchaseInvoiceStatus = "UnsuccesfullyDelivered"
)

var purchaseStatusLabels = map[PurchaseInvoiceStatus]string{
	PurchaseStatusNew:                     "Nova",
	PurchaseStatusSeen:                    "Pregledana",
	PurchaseStatusApproved:                "Odobrena",
	PurchaseStatusRejected:                "Odbijena",
	PurchaseStatusCancelled:               "Otkazana",
	PurchaseStatusStorno:                  "Stornirana",
	PurchaseStatusUnsuccessfullyDelivered: "Neuspešno isporučena",
}

// PurchaseInvoiceStatuses lists the known purchase statuses in lifecycle order.
func PurchaseInvoiceStatuses() []PurchaseInvoiceStatus {
	return []PurchaseInvoiceStatus{
		PurchaseStatusNew, PurchaseStatusSeen, PurchaseStatusApproved, PurchaseStatusRejected,
		PurchaseStatusCancelled, PurchaseStatusStorno, PurchaseStatusUnsuccessfullyDelivered,
	}
}

func (s PurchaseInvoiceStatus) String() string { return string(s) }

// Label returns the Serbian display name, or the raw value when unknown.
func (s PurchaseInvoiceStatus) Label() string {
	if l, ok := purchaseStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s PurchaseInvoiceStatus) Known() bool {
	_, ok := purchaseStatusLabels[s]
	return ok
}

func (s PurchaseInvoiceStatus) IsFinal() bool {
	switch s {
	case PurchaseStatusApproved, PurchaseStatusRejected, PurchaseStatusCancelled, PurchaseStatusStorno:
		return true
	}
	return false
}

// RequiresAction reports whether the buyer still has to accept or reject.
func (s PurchaseInvoiceStatus) RequiresAction() bool {
	return s == PurchaseStatusNew || s == PurchaseStatusSeen
}

// CirInvoiceStatus is the status on the Central Invoice Registry.
type CirInvoiceStatus string

const (
	CirStatusNone             CirInvoiceStatus = "None"
	CirStatusActive           CirInvoiceStatus = "ActiveCir"
	CirStatusInvalid          CirInvoiceStatus = "InvalidCir"
	CirStatusCancelled        CirInvoiceStatus = "CancelledCir"
	CirStatusPartiallySettled CirInvoiceStatus = "PartiallySettled"
	CirStatusSettled          CirInvoiceStatus = "Settled"
)

var cirStatusLabels = map[CirInvoiceStatus]string{
	CirStatusNone:             "Nema",
	CirStatusActive:           "Aktivna na CIR",
	CirStatusInvalid:          "Nevažeća na CIR",
	CirStatusCancelled:        "Otkazana na CIR",
	CirStatusPartiallySettled: "Delimično izmirena",
	CirStatusSettled:          "Izmirena",
}

func (s CirInvoiceStatus) String() string { return string(s) }

func (s CirInvoiceStatus) Label() string {
	if l, ok := cirStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s CirInvoiceStatus) Known() bool {
	_, ok := cirStatusLabels[s]
	return ok
}

// SendToCir tells the service whether an uploaded invoice is registered on CIR.
type SendToCir string

const (
	SendToCirYes SendToCir = "Yes"
	SendToCirNo  SendToCir = "No"
)

func (s SendToCir) String() string { return string(s) }

func (s SendToCir) Label() string {
	switch s {
	case SendToCirYes:
		return "Da"
	case SendToCirNo:
		return "Ne"
	}
	return string(s)
}

func (s SendToCir) Known() bool {
	return s == SendToCirYes || s == SendToCirNo
}
