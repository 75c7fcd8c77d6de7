package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// ErrorKind groups domain errors by how a caller should react to them.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
	KindBusinessRule  ErrorKind = "business_rule"
	KindRouting       ErrorKind = "routing"
)

// Standard error codes for API responses
const (
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeMissingProductField = "MISSING_PRODUCT_FIELD"
	ErrCodeDuplicateEmail      = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeInvalidPayload      = "INVALID_PAYLOAD"
	ErrCodeInvalidUser         = "INVALID_USER"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeExceedsStock        = "EXCEEDS_STOCK"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeNegativeStock       = "NEGATIVE_STOCK"
	ErrCodeUnsupportedEndpoint = "UNSUPPORTED_ENDPOINT"
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a user-displayable business error. The message text is what
// callers show to the user.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so a formatted error compares equal to
// the sentinel it was derived from.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMissingRegistrationFields = NewDomainError(KindValidation, ErrCodeMissingField, "Please fill all registration fields.")
	ErrEmailRegistered           = NewDomainError(KindBusinessRule, ErrCodeDuplicateEmail, "Email already registered.")
	ErrInvalidCredentials        = NewDomainError(KindValidation, ErrCodeInvalidCredentials, "Invalid email or password.")
	ErrAdminAccessDenied         = NewDomainError(KindAuthorization, ErrCodeForbidden, "Admin access denied.")
	ErrProductFieldsRequired     = NewDomainError(KindValidation, ErrCodeMissingProductField, "Product name and category are required.")
	ErrProductNotFound           = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found.")
	ErrUserNotFound              = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User not found.")
	ErrInvalidCartPayload        = NewDomainError(KindValidation, ErrCodeInvalidPayload, "Invalid cart payload.")
	ErrExceedsStock              = NewDomainError(KindBusinessRule, ErrCodeExceedsStock, "Requested meters exceed available stock.")
	ErrTotalExceedsStock         = NewDomainError(KindBusinessRule, ErrCodeExceedsStock, "Total requested meters exceed available stock.")
	ErrInvalidUserID             = NewDomainError(KindValidation, ErrCodeInvalidUser, "Invalid user ID.")
	ErrCartEmpty                 = NewDomainError(KindBusinessRule, ErrCodeEmptyCart, "Cart is empty.")
	ErrInsufficientStock         = NewDomainError(KindBusinessRule, ErrCodeInsufficientStock, "Insufficient stock.")
	ErrNegativeStock             = NewDomainError(KindValidation, ErrCodeNegativeStock, "Stock cannot be negative.")
	ErrUnsupportedEndpoint       = NewDomainError(KindRouting, ErrCodeUnsupportedEndpoint, "Unsupported local endpoint.")
)

// ProductMissingError reports a cart line whose product no longer exists.
func ProductMissingError(productID int64) *DomainError {
	return NewDomainError(KindNotFound, ErrCodeProductNotFound, fmt.Sprintf("Product %d not found.", productID))
}

// InsufficientStockError reports a product that cannot cover an order line.
func InsufficientStockError(productName string) *DomainError {
	return NewDomainError(KindBusinessRule, ErrCodeInsufficientStock, fmt.Sprintf("Insufficient stock for %s.", productName))
}

// UnsupportedEndpointError reports a method and path with no matching route.
func UnsupportedEndpointError(method, path string) *DomainError {
	return NewDomainError(KindRouting, ErrCodeUnsupportedEndpoint, fmt.Sprintf("Unsupported local endpoint: %s %s", method, path))
}
