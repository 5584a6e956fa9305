package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nuclralert-dashboard/internal/domain"
)

var (
	ErrBackendUnavailable = New(
		"BACKEND_UNAVAILABLE",
		"NuclrAlert backend is unreachable",
		http.StatusBadGateway,
	)

	ErrBackendFailure = New(
		"BACKEND_ERROR",
		"NuclrAlert backend returned an error",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// FromDomain переводит доменную ошибку в AppError для JSON API
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var invalid validator.ValidationErrors
	if stderrors.As(err, &invalid) {
		fields := make(map[string]interface{}, len(invalid))
		for _, fe := range invalid {
			fields[fe.Field()] = fe.Tag()
		}
		return ErrInvalidRequest.WithDetails(fields)
	}

	switch {
	case domain.IsNetworkError(err):
		return ErrBackendUnavailable.WithMessage(err.Error())
	case domain.IsServerError(err):
		return ErrBackendFailure.WithMessage(err.Error())
	}
	return ErrInternalServer
}
