package booking

// Status is a single tagged state, replacing the four independent flags the
// legacy data model carried. Invalid combinations (completed but never
// approved, etc.) are unrepresentable.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the booking still holds its slot.
func (s Status) IsActive() bool {
	return s != StatusCanceled
}

// IsTerminal reports whether no further transition is possible. Canceled is
// not terminal: it can be reopened while the reservation is in the future.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
