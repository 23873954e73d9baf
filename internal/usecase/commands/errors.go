package commands

import "evcharge-booking/internal/pkg/errs"

// Sentinel errors shared across command families. Handlers map these to
// HTTP statuses; the commands never see transport concerns.
var (
	ErrForbidden               = errs.New("operation not permitted for this actor")
	ErrDatabaseOperationFailed = errs.New("database operation failed")

	ErrStationNotFound        = errs.New("station not found")
	ErrStationHasDependencies = errs.New("station has dependent records")
	ErrInvalidStationInput    = errs.New("invalid station input")

	ErrSlotNotFound            = errs.New("slot not found")
	ErrSlotsAlreadyInitialized = errs.New("slots already initialized for this day")
	ErrSlotsHaveActiveBookings = errs.New("slots have active bookings")
	ErrSlotBooked              = errs.New("slot has an active booking")

	ErrUserNotFound       = errs.New("user not found")
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrUserInactive       = errs.New("user account is deactivated")
	ErrEmailTaken         = errs.New("email or username already registered")
)
