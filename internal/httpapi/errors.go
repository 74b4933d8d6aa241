package httpapi

import (
	"errors"
	"net/http"

	"github.com/ZaguanLabs/polytrans"
)

// statusFor maps a translation error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, polytrans.ErrUnknownProvider):
		return http.StatusNotFound
	case errors.Is(err, polytrans.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, polytrans.ErrAlreadyAccelerated):
		return http.StatusConflict
	case polytrans.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, polytrans.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, polytrans.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// kindOf names the error kind for clients.
func kindOf(err error) string {
	kinds := []struct {
		err  error
		name string
	}{
		{polytrans.ErrUnknownProvider, "unknown_provider"},
		{polytrans.ErrUnsupportedLanguage, "unsupported_language"},
		{polytrans.ErrUnsupportedPair, "unsupported_pair"},
		{polytrans.ErrInvalidPair, "invalid_pair"},
		{polytrans.ErrEmptyQuery, "empty_query"},
		{polytrans.ErrQueryTooLong, "query_too_long"},
		{polytrans.ErrInvalidOption, "invalid_option"},
		{polytrans.ErrAlreadyAccelerated, "already_accelerated"},
		{polytrans.ErrProviderUnavailable, "provider_unavailable"},
		{polytrans.ErrNetwork, "network"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
