package models

import "time"

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "UNPAID"
	InvoicePartial InvoiceStatus = "PARTIAL"
	InvoicePaid    InvoiceStatus = "PAID"
)

// Invoice is a bill issued to a patient, optionally for an appointment.
type Invoice struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patientId"`
	AppointmentID string        `json:"appointmentId,omitempty"`
	Amount        float64       `json:"amount"`
	Status        InvoiceStatus `json:"status"`
	IssuedAt      time.Time     `json:"issuedAt"`
	DueAt         time.Time     `json:"dueAt"`
	PatientName   string        `json:"patientName"`
	Items         []InvoiceItem `json:"items"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// InvoiceItem is one billed line.
type InvoiceItem struct {
	ID          string  `json:"id"`
	InvoiceID   string  `json:"invoiceId"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Outstanding reports whether the invoice still awaits (some) payment.
func (i *Invoice) Outstanding() bool {
	return i.Status == InvoiceUnpaid || i.Status == InvoicePartial
}
