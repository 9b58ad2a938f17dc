package invoicing

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusValidated InvoiceStatus = "VALIDATED"
	StatusSent      InvoiceStatus = "SENT"
	StatusPaid      InvoiceStatus = "PAID"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

// AllStatuses lists every status in lifecycle order
var AllStatuses = []InvoiceStatus{StatusDraft, StatusValidated, StatusSent, StatusPaid, StatusCancelled}

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusValidated, StatusSent, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses no operation can leave
func (s InvoiceStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Operation is a lifecycle command applied to an invoice
type Operation string

const (
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpValidate Operation = "validate"
	OpSend     Operation = "send"
	OpCancel   Operation = "cancel"
	OpMarkPaid Operation = "mark_paid"
)

// transitions is the single source of lifecycle legality.
// Update and delete keep the invoice in DRAFT; delete then removes the row.
var transitions = map[InvoiceStatus]map[Operation]InvoiceStatus{
	StatusDraft: {
		OpUpdate:   StatusDraft,
		OpDelete:   StatusDraft,
		OpValidate: StatusValidated,
		OpCancel:   StatusCancelled,
	},
	StatusValidated: {
		OpSend:     StatusSent,
		OpCancel:   StatusCancelled,
		OpMarkPaid: StatusPaid,
	},
	StatusSent: {
		OpSend:     StatusSent,
		OpCancel:   StatusCancelled,
		OpMarkPaid: StatusPaid,
	},
}

// Next returns the status reached by applying op, and false when op is not
// permitted from s
func (s InvoiceStatus) Next(op Operation) (InvoiceStatus, bool) {
	to, ok := transitions[s][op]
	return to, ok
}

// Allows reports whether op is permitted from s
func (s InvoiceStatus) Allows(op Operation) bool {
	_, ok := s.Next(op)
	return ok
}

// CanTransitionTo checks if some operation moves s to target
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, to := range transitions[s] {
		if to == target && to != s {
			return true
		}
	}
	return false
}
