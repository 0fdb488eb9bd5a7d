package apierror

// Error type URIs following the urn:sagewell:error:* pattern, used as the
// "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:sagewell:error:validation"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:sagewell:error:bad_request"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:sagewell:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:sagewell:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:sagewell:error:rate_limit"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:sagewell:error:unauthorized"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:sagewell:error:internal"

	// TypeUnavailable indicates a temporarily unavailable dependency (503)
	TypeUnavailable = "urn:sagewell:error:unavailable"
)

// Titles for each error type
const (
	TitleValidation   = "Validation Error"
	TitleBadRequest   = "Bad Request"
	TitleNotFound     = "Resource Not Found"
	TitleConflict     = "Resource Conflict"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUnauthorized = "Authentication Required"
	TitleInternal     = "Internal Server Error"
	TitleUnavailable  = "Service Unavailable"
)
