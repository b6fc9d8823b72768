package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeCapacityExceeded, http.StatusUnprocessableEntity},
		{ErrCodeNoSuitableSection, http.StatusUnprocessableEntity},
		{ErrCodeNoAvailableSlot, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"INVALID_STATE", ErrCodeInvalidState},
		{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"CAPACITY_EXCEEDED", ErrCodeCapacityExceeded},
		{"NO_FREE_COORDINATE", ErrCodeNoFreeCoordinate},
		{"NO_SUITABLE_SECTION", ErrCodeNoSuitableSection},
		{"NO_AVAILABLE_SLOT", ErrCodeNoAvailableSlot},
		{"INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		// Constructor argument problems map to invalid input
		{"INVALID_QUANTITY", ErrCodeInvalidInput},
		{"INVALID_ROTATION", ErrCodeInvalidInput},
		{"INVALID_CONDITION", ErrCodeInvalidInput},
		// Aggregate transition rejections map to invalid state
		{"SLOT_OCCUPIED", ErrCodeInvalidState},
		{"SECTION_NOT_EMPTY", ErrCodeInvalidState},
		{"LOT_ACCEPTED", ErrCodeInvalidState},
		{"ALREADY_DISPATCHED", ErrCodeInvalidState},
		// Already-normalized codes pass through
		{ErrCodeNotFound, ErrCodeNotFound},
		{ErrCodeConcurrencyConflict, ErrCodeConcurrencyConflict},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestNormalizedCodesHaveStatus(t *testing.T) {
	// Every code NormalizeErrorCode can produce must resolve to a non-500
	// status, otherwise a clean domain rejection surfaces as a server error.
	for domainCode := range DomainErrorCodeMapping {
		wireCode := NormalizeErrorCode(domainCode)
		assert.NotEqual(t, http.StatusInternalServerError, GetHTTPStatus(wireCode),
			"domain code %s normalizes to %s which has no HTTP status", domainCode, wireCode)
	}
}

func TestErrorResponseSerialization(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Section not found", "req-123")

	data, err := json.Marshal(resp)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])

	errInfo := decoded["error"].(map[string]interface{})
	assert.Equal(t, ErrCodeNotFound, errInfo["code"])
	assert.Equal(t, "Section not found", errInfo["message"])
	assert.Equal(t, "req-123", errInfo["request_id"])
	assert.NotContains(t, errInfo, "details")
}

func TestValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "name", Message: "This field is required"},
		{Field: "row_count", Message: "Must be at least 1"},
	}
	resp := NewValidationErrorResponse("Request validation failed", "req-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "name", resp.Error.Details[0].Field)
}
