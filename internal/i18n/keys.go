// Package i18n provides internationalization support for the fulfillment service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates a token without the required scope.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates an idempotency key reused while its first request is in flight.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTooManyLineItems indicates a body with more lines than allowed.
	ErrKeyTooManyLineItems = "error.validation.too_many_line_items"
	// ErrKeyEmptyLineItems indicates a body without lines.
	ErrKeyEmptyLineItems = "error.validation.empty_line_items"
	// ErrKeyAllLinesRejected indicates that no line of the request was accepted.
	ErrKeyAllLinesRejected = "error.all_lines_rejected"
	// ErrKeyInvalidOrderID indicates a malformed order id path parameter.
	ErrKeyInvalidOrderID = "error.validation.order_id"
	// ErrKeyServiceUnavailable indicates that a backing store is disabled or unreachable.
	ErrKeyServiceUnavailable = "error.service_unavailable"
)

// Success message translation keys.
const (
	SuccessKeyCatalogInitialized = "success.catalog_initialized"
	SuccessKeyOrderProcessed     = "success.order_processed"
	SuccessKeyOrderDeferred      = "success.order_deferred"
	SuccessKeyRestockProcessed   = "success.restock_processed"
)
