package models

import "time"

// ServiceType enumerates the services a customer can request.
type ServiceType string

const (
	ServiceTreeRemoval   ServiceType = "Tree Removal"
	ServiceTrimming      ServiceType = "Trimming & Pruning"
	ServiceStumpGrinding ServiceType = "Stump Grinding"
	ServiceEmergency     ServiceType = "Emergency Service"
)

// ValidServiceType reports whether s is one of the defined services.
func ValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceTreeRemoval, ServiceTrimming, ServiceStumpGrinding, ServiceEmergency:
		return true
	}
	return false
}

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"
	StatusQuoteReady     BookingStatus = "quote-ready"
	StatusQuoteSent      BookingStatus = "quote-sent"
	StatusQuoteAccepted  BookingStatus = "quote-accepted"
	StatusPendingBooking BookingStatus = "pending-booking"
	StatusInvoiceReady   BookingStatus = "invoice-ready"
	StatusInvoiceSent    BookingStatus = "invoice-sent"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"

	// StatusConfirmed is a legacy status written by the old admin tooling.
	// It is never a transition target but still counts as slot-occupying.
	StatusConfirmed BookingStatus = "confirmed"
)

// transitions maps each status to the set of statuses reachable from it.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:        {StatusQuoteReady, StatusCancelled},
	StatusQuoteReady:     {StatusQuoteSent, StatusCancelled},
	StatusQuoteSent:      {StatusQuoteAccepted, StatusCancelled},
	StatusQuoteAccepted:  {StatusPendingBooking, StatusCancelled},
	StatusPendingBooking: {StatusInvoiceReady, StatusCancelled},
	StatusInvoiceReady:   {StatusInvoiceSent, StatusCancelled},
	StatusInvoiceSent:    {StatusCompleted, StatusCancelled},
	StatusConfirmed:      {StatusPendingBooking, StatusInvoiceReady, StatusCancelled},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ActiveStatuses is the set of statuses whose bookings occupy inquiry slots.
// Invoice-stage and terminal bookings no longer hold their original slot.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusQuoteReady,
	StatusQuoteSent,
	StatusQuoteAccepted,
	StatusConfirmed,
	StatusPendingBooking,
}

// IsActive reports whether the status occupies an inquiry slot.
func (s BookingStatus) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// Booking represents one customer service request. Date/Time are the original
// inquiry slot; JobDate/JobTime are set only once a quote is accepted and a
// job is actually scheduled.
type Booking struct {
	ID         string        `bson:"id" json:"id"`
	CustomerID string        `bson:"customer_id" json:"customer_id"`
	Service    ServiceType   `bson:"service" json:"service"`
	Date       string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time       string        `bson:"time" json:"time"` // one of the slot enum
	Status     BookingStatus `bson:"status" json:"status"`
	JobDate    string        `bson:"job_date,omitempty" json:"job_date,omitempty"`
	JobTime    string        `bson:"job_time,omitempty" json:"job_time,omitempty"`
	Quote      *Quote        `bson:"quote,omitempty" json:"quote,omitempty"`
	Archived   bool          `bson:"archived" json:"archived"`

	// Customer contact details captured on submission.
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	Notes   string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// JobScheduled reports whether the booking has a concrete job date.
func (b *Booking) JobScheduled() bool {
	return b.JobDate != "" && b.JobTime != ""
}
