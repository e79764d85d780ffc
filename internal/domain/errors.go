package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrSecretNotConfigured = errors.New("payment gateway secret not configured")
	ErrGatewayFailure      = errors.New("payment gateway call failed")
)
