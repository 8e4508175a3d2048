package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTermsNotAccepted = errors.New("terms of service not accepted")
)
