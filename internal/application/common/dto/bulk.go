// Package dto provides common data transfer objects shared across domains.
package dto

import (
	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// BulkLimit defines the maximum number of items per bulk operation.
const BulkLimit = 500

// BulkItemError is the failure of one item inside a bulk operation.
type BulkItemError struct {
	ID      uint   `json:"id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkResult collects per-item outcomes. One item failing never aborts the batch.
type BulkResult[T any] struct {
	Successes []T             `json:"successes"`
	Errors    []BulkItemError `json:"errors"`
}

// NewBulkResult returns an empty result whose slices encode as [] rather than null.
func NewBulkResult[T any]() *BulkResult[T] {
	return &BulkResult[T]{
		Successes: []T{},
		Errors:    []BulkItemError{},
	}
}

// AddSuccess records a successful item.
func (r *BulkResult[T]) AddSuccess(item T) {
	r.Successes = append(r.Successes, item)
}

// AddError records a failed item, deriving a stable code from err.
// notFoundCode and conflictCode name the domain-specific codes.
func (r *BulkResult[T]) AddError(id uint, err error, notFoundCode, conflictCode string) {
	r.Errors = append(r.Errors, BulkItemError{
		ID:      id,
		Code:    BulkErrorCode(err, notFoundCode, conflictCode),
		Message: bulkErrorMessage(err),
	})
}

// AddErrorCode records a failed item with an explicit code.
func (r *BulkResult[T]) AddErrorCode(id uint, code, message string) {
	r.Errors = append(r.Errors, BulkItemError{ID: id, Code: code, Message: message})
}

// BulkErrorCode maps an error to the stable code reported to callers.
func BulkErrorCode(err error, notFoundCode, conflictCode string) string {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		return constants.BulkCodeInternal
	}
	switch appErr.Type {
	case errors.ErrorTypeNotFound:
		return notFoundCode
	case errors.ErrorTypeConflict:
		return conflictCode
	case errors.ErrorTypeValidation, errors.ErrorTypeBadRequest:
		return constants.BulkCodeValidation
	default:
		return constants.BulkCodeInternal
	}
}

func bulkErrorMessage(err error) string {
	appErr := errors.GetAppError(err)
	if appErr == nil || appErr.Type == errors.ErrorTypeInternal {
		return constants.ErrMsgInternalServerError
	}
	if appErr.Details != "" {
		return appErr.Message + ": " + appErr.Details
	}
	return appErr.Message
}
