package usecase

import "errors"

// Policy rejections. These are expected business outcomes, not faults: the
// handler maps them to 4xx responses with the message as-is.
var (
	ErrOutOfWindow       = errors.New("outside the allowed time window")
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
	ErrNotClockedIn      = errors.New("no clock-in found for today")
	ErrClockOutBeforeIn  = errors.New("clock-out cannot be earlier than clock-in")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidAction     = errors.New("action must be 'in' or 'out'")
)
