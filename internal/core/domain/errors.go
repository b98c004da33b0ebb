package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Member errors
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrMemberCodeTaken    = errors.New("member code already registered")
	ErrInvalidMemberType  = errors.New("member type must be individu or perusahaan")
	ErrAlreadyDecided     = errors.New("record already approved or rejected")
	ErrMemberNotApproved  = errors.New("member is not approved")
	ErrDocumentNotFound   = errors.New("member document not found")
	ErrDeathClaimNotFound = errors.New("death claim not found")
)

// Deposit errors
var (
	ErrBilyetNotFound  = errors.New("bilyet not found")
	ErrBilyetNotActive = errors.New("bilyet is not active")
	ErrTariffNotFound  = errors.New("no tariff for the requested term")
	ErrInvalidTerm     = errors.New("term months must be positive")
)

// Closing errors
var (
	ErrPeriodAlreadyClosed = errors.New("period already closed")
	ErrPeriodInProgress    = errors.New("a closing run for this period is in progress")
	ErrIncompleteYear      = errors.New("year-end close requires all monthly closes")
	ErrRunNotFound         = errors.New("closing run not found")
)

// Allocation errors
var (
	ErrAllocationNotFound  = errors.New("allocation sheet not found")
	ErrPercentagesNotWhole = errors.New("allocation percentages must sum to 100")
)
