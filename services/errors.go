package services

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrorKind classifies service failures.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NotFound"
	KindInvalidQuantity   ErrorKind = "InvalidQuantity"
	KindInsufficientStock ErrorKind = "InsufficientStock"
	KindValidation        ErrorKind = "ValidationError"
	KindConflict          ErrorKind = "Conflict"
	KindUnauthorized      ErrorKind = "Unauthorized"
	KindForbidden         ErrorKind = "Forbidden"
	KindStore             ErrorKind = "StoreError"
	KindUnavailable       ErrorKind = "Unavailable"
)

// ServiceError is returned by every service method. Message is safe to show
// to clients.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Is matches on Kind so callers can use errors.Is with the sentinels below.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound          = &ServiceError{Kind: KindNotFound}
	ErrInvalidQuantity   = &ServiceError{Kind: KindInvalidQuantity}
	ErrInsufficientStock = &ServiceError{Kind: KindInsufficientStock}
	ErrValidation        = &ServiceError{Kind: KindValidation}
	ErrConflict          = &ServiceError{Kind: KindConflict}
	ErrUnauthorized      = &ServiceError{Kind: KindUnauthorized}
	ErrForbidden         = &ServiceError{Kind: KindForbidden}
	ErrStore             = &ServiceError{Kind: KindStore}
)

func notFound(msg string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, StatusCode: http.StatusNotFound, Message: msg}
}

func invalidQuantity(msg string) *ServiceError {
	return &ServiceError{Kind: KindInvalidQuantity, StatusCode: http.StatusBadRequest, Message: msg}
}

func insufficientStock(msg string) *ServiceError {
	return &ServiceError{Kind: KindInsufficientStock, StatusCode: http.StatusConflict, Message: msg}
}

func validation(msg string) *ServiceError {
	return &ServiceError{Kind: KindValidation, StatusCode: http.StatusBadRequest, Message: msg}
}

func conflict(msg string) *ServiceError {
	return &ServiceError{Kind: KindConflict, StatusCode: http.StatusConflict, Message: msg}
}

func unauthorized(msg string) *ServiceError {
	return &ServiceError{Kind: KindUnauthorized, StatusCode: http.StatusUnauthorized, Message: msg}
}

func unavailable(msg string) *ServiceError {
	return &ServiceError{Kind: KindUnavailable, StatusCode: http.StatusServiceUnavailable, Message: msg}
}

func forbidden(msg string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, StatusCode: http.StatusForbidden, Message: msg}
}

// storeError logs the underlying failure and hides it from the caller.
func storeError(log *zap.Logger, op string, err error) *ServiceError {
	log.Error("store failure", zap.String("op", op), zap.Error(err))
	return &ServiceError{Kind: KindStore, StatusCode: http.StatusInternalServerError, Message: "internal error"}
}

// fromStore maps not-found and constraint errors to their kinds and anything
// else to a store error.
func fromStore(log *zap.Logger, op string, err error, notFoundMsg string) *ServiceError {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict("resource already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return conflict("resource is still referenced")
	default:
		return storeError(log, op, err)
	}
}
