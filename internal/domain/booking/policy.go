package booking

import "time"

// CancelWindow is the minimum lead time before the reservation during which
// cancellation remains permitted.
const CancelWindow = 3 * time.Hour

// CanCancel reports whether a booking reserved for reservedAt may still be
// canceled at now. The server's clock reading at the instant of the check is
// authoritative, never the client's.
func CanCancel(reservedAt, now time.Time) bool {
	return reservedAt.Sub(now) >= CancelWindow
}

// CanReopen reports whether a canceled booking may return to pending.
func CanReopen(reservedAt, now time.Time) bool {
	return reservedAt.After(now)
}
