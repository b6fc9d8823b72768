package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrCapacityExceeded    = NewDomainError("CAPACITY_EXCEEDED", "Warehouse does not have enough free slots")
	ErrNoFreeCoordinate    = NewDomainError("NO_FREE_COORDINATE", "No free coordinate left for a new section")
	ErrNoSuitableSection   = NewDomainError("NO_SUITABLE_SECTION", "No section matches the requested layout, capacity and storage conditions")
	ErrNoAvailableSlot     = NewDomainError("NO_AVAILABLE_SLOT", "No available slot left in the assigned section")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)
