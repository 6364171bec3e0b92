package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"overcooked-ordering/order-svc/internal/auth"
	"overcooked-ordering/order-svc/internal/service"
)

type HTTPErrorInfo struct {
	Status  int
	Message string
}

type errorMapping struct {
	err     error
	status  int
	message string
}

// ErrorMapper turns service errors into HTTP statuses. A mapping without a
// fixed message exposes the error text, which carries the user-facing reason.
type ErrorMapper struct {
	mappings       []errorMapping
	defaultStatus  int
	defaultMessage string
}

func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, errorMapping{err: err, status: status, message: message})
	return m
}

func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.err) {
			msg := mapping.message
			if msg == "" {
				msg = err.Error()
			}
			return HTTPErrorInfo{Status: mapping.status, Message: msg}
		}
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// DefaultErrorMapper covers every sentinel the order services return.
func DefaultErrorMapper() *ErrorMapper {
	return NewErrorMapper().
		WithMapping(service.ErrNotFound, http.StatusNotFound, "").
		WithMapping(service.ErrFoodNotFound, http.StatusNotFound, "").
		WithMapping(service.ErrInvalidAddress, http.StatusBadRequest, "Invalid Address ID").
		WithMapping(service.ErrInvalidCoupon, http.StatusBadRequest, "").
		WithMapping(service.ErrBelowMinimumOrder, http.StatusBadRequest, "").
		WithMapping(service.ErrSlotTaken, http.StatusBadRequest, "").
		WithMapping(service.ErrEmptyCart, http.StatusBadRequest, "").
		WithMapping(service.ErrInvalidQuantity, http.StatusBadRequest, "").
		WithMapping(service.ErrInvalidStatus, http.StatusBadRequest, "").
		WithMapping(service.ErrInvalidInput, http.StatusBadRequest, "").
		WithMapping(service.ErrAlreadyClaimed, http.StatusConflict, "").
		WithMapping(service.ErrDuplicateCoupon, http.StatusConflict, "").
		WithMapping(service.ErrInvalidStatusTransition, http.StatusConflict, "").
		WithMapping(service.ErrRequestInFlight, http.StatusConflict, "").
		WithMapping(auth.ErrMissingToken, http.StatusUnauthorized, "missing token").
		WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	info := h.mapper.Map(err)
	if info.Status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}
	writeMessage(w, info.Status, info.Message)
}
