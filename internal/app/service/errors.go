package service

import (
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
)

// translateLookupError maps a repository "no rows" error to notFound and
// anything else to an upstream failure described by message.
func translateLookupError(err error, notFound *apperrors.AppError, message string) error {
	if apperrors.IsRecordNotFound(err) {
		return notFound
	}
	return apperrors.Upstream(apperrors.InternalDatabaseError, message, err)
}

// translateWriteError maps a unique index violation to duplicate.
func translateWriteError(err error, duplicate *apperrors.AppError, message string) error {
	if apperrors.IsDuplicateKey(err) {
		return duplicate
	}
	if apperrors.IsRecordNotFound(err) {
		return apperrors.NotFound(apperrors.ResourceNotFound, "Record not found")
	}
	return apperrors.Upstream(apperrors.InternalDatabaseError, message, err)
}
