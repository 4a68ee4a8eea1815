package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// ErrMissingCredential is returned by a source before any request when its api key is not configured
	ErrMissingCredential = errors.New("missing api credential")
	// ErrSourceDegraded is returned with an empty result when an upstream failed, the run continues without it
	ErrSourceDegraded = errors.New("source degraded")
	// ErrPriceUnavailable means no usable fiat price snapshot, a run can not be scored without it
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrBalanceMisaligned means balances do not line up with listings by position and token id
	ErrBalanceMisaligned = errors.New("balances misaligned with listings")
)
