package domain

import "errors"

var (
	ErrOperationNotSupported = errors.New("operation not supported by domain")
	ErrUnknownDomain         = errors.New("unknown domain")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrForbidden             = errors.New("access forbidden")
	ErrInvalidStatus         = errors.New("status is not an allowed value")
	ErrStoreUnavailable      = errors.New("token store unavailable")
)
