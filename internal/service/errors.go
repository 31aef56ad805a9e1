package service

import "errors"

// The four failure kinds callers must be able to distinguish. Controllers
// map these to HTTP statuses with errors.Is; anything wrapping ErrStorage
// is an infrastructure failure and surfaces as a 500.
var (
	ErrWorksiteNotFound  = errors.New("worksite not found or inactive")
	ErrCheckinNotFound   = errors.New("check-in not found")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrImageConflict     = errors.New("check-in already has a verification image")
	ErrIllegalTransition = errors.New("illegal check-in status transition")
	ErrStorage           = errors.New("storage failure")
)
