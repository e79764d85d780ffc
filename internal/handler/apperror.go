package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken     = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken     = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidSignature    = &AppError{http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature is invalid"}
	ErrMethodNotAllowed    = &AppError{http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed"}
	ErrGatewayFailed       = &AppError{http.StatusBadGateway, "GATEWAY_ERROR", "Payment gateway call failed"}
	ErrSecretNotConfigured = &AppError{http.StatusServiceUnavailable, "GATEWAY_NOT_CONFIGURED", "Payment gateway secret is not configured"}
)
