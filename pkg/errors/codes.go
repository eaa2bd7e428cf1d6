package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
	ErrCodeNotImplemented     ErrorCode = "COMMON_013"
)

// Lease / Extraction Module Error Codes
const (
	ErrCodeLeaseFieldsMissing    ErrorCode = "LEASE_001"
	ErrCodeLeaseDocumentTooLarge ErrorCode = "LEASE_002"
	ErrCodeLeaseDocumentInvalid  ErrorCode = "LEASE_003"
	ErrCodeExtractionFailed      ErrorCode = "LEASE_004"
)

// Analysis Module Error Codes
const (
	ErrCodeAnalysisNotFound      ErrorCode = "ANALYSIS_001"
	ErrCodeAnalysisFailed        ErrorCode = "ANALYSIS_002"
	ErrCodeAnalysisAlreadyExists ErrorCode = "ANALYSIS_003"
	ErrCodePortfolioEmpty        ErrorCode = "ANALYSIS_004"
)

// Market Data Error Codes
const (
	ErrCodeMarketDataUnavailable ErrorCode = "MARKET_001"
	ErrCodeMarketDataInvalid     ErrorCode = "MARKET_002"
)

// Job Store / Document Store Error Codes
const (
	ErrCodeJobNotFound      ErrorCode = "STORE_001"
	ErrCodeJobAlreadyFinal  ErrorCode = "STORE_002"
	ErrCodeDocumentNotFound ErrorCode = "STORE_003"
	ErrCodeStorageError     ErrorCode = "STORE_004"
)

// Aliases used by the factory helpers in errors.go.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeValidation   = ErrCodeValidation
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.  Codes absent
// from the map resolve to 500 via HTTPStatus.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeLeaseFieldsMissing:    http.StatusBadRequest,
	ErrCodeLeaseDocumentTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeLeaseDocumentInvalid:  http.StatusUnsupportedMediaType,
	ErrCodeExtractionFailed:      http.StatusUnprocessableEntity,

	ErrCodeAnalysisNotFound:      http.StatusNotFound,
	ErrCodeAnalysisFailed:        http.StatusInternalServerError,
	ErrCodeAnalysisAlreadyExists: http.StatusConflict,
	ErrCodePortfolioEmpty:        http.StatusBadRequest,

	ErrCodeMarketDataUnavailable: http.StatusServiceUnavailable,
	ErrCodeMarketDataInvalid:     http.StatusBadGateway,

	ErrCodeJobNotFound:      http.StatusNotFound,
	ErrCodeJobAlreadyFinal:  http.StatusConflict,
	ErrCodeDocumentNotFound: http.StatusNotFound,
	ErrCodeStorageError:     http.StatusInternalServerError,
}

// HTTPStatus resolves the HTTP status for a code, defaulting to 500 for
// unmapped or unknown codes.
func HTTPStatus(code ErrorCode) int {
	if s, ok := ErrorCodeHTTPStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
