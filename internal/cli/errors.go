package cli

import (
	"errors"

	"github.com/aidanlsb/autokey/internal/catalog"
	"github.com/aidanlsb/autokey/internal/keyfile"
	"github.com/aidanlsb/autokey/internal/render"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrConfigInvalid        = "CONFIG_INVALID"
	ErrCatalogNotConfigured = "CATALOG_NOT_CONFIGURED"
	ErrCatalogInvalid       = "CATALOG_INVALID"
	ErrKeyWordNotFound      = "KEYWORD_NOT_FOUND"
	ErrKeyWordInstantiation = "KEYWORD_INSTANTIATION_FAILED"
	ErrFieldNotFound        = "FIELD_NOT_FOUND"
	ErrFieldInvalid         = "FIELD_INVALID"
	ErrCardInvalid          = "CARD_INVALID"
	ErrIndexOutOfRange      = "INDEX_OUT_OF_RANGE"
	ErrInvalidValue         = "INVALID_VALUE"
	ErrDeckNotFound         = "DECK_NOT_FOUND"
	ErrDeckExists           = "DECK_EXISTS"
	ErrFileReadError        = "FILE_READ_ERROR"
	ErrFileWriteError       = "FILE_WRITE_ERROR"
	ErrRenderFailed         = "RENDER_FAILED"
	ErrIndexError           = "INDEX_ERROR"
	ErrInvalidInput         = "INVALID_INPUT"
)

// Warning codes for non-fatal issues.
const (
	WarnKeyWordSkipped = "KEYWORD_SKIPPED"
	WarnIndexEmpty     = "INDEX_EMPTY"
)

// errorCode maps typed errors from the model to a stable code.
func errorCode(err error, fallback string) string {
	var kie *keyfile.KeywordInstantiationError
	var fe *keyfile.FieldError
	var ce *keyfile.CardError
	switch {
	case errors.As(err, &kie):
		return ErrKeyWordInstantiation
	case errors.As(err, &fe):
		return ErrFieldInvalid
	case errors.As(err, &ce):
		return ErrCardInvalid
	case errors.Is(err, keyfile.ErrIndexOutOfRange):
		return ErrIndexOutOfRange
	case errors.Is(err, render.ErrFieldOverflow), errors.Is(err, render.ErrFieldOverlap), errors.Is(err, render.ErrBlankKeyWord):
		return ErrRenderFailed
	case errors.Is(err, catalog.ErrUnknownFormat):
		return ErrCatalogInvalid
	}
	return fallback
}
