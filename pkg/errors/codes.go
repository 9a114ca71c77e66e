package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal   ErrorCode = "COMMON_001"
	ErrCodeBadRequest ErrorCode = "COMMON_002"
	ErrCodeNotFound   ErrorCode = "COMMON_003"
	ErrCodeValidation ErrorCode = "COMMON_004"
	ErrCodeIO         ErrorCode = "COMMON_005"

	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// Molecule / graph error codes.  These cover failures detected at the
// graph-construction boundary, before any scoring begins.
const (
	ErrCodeMalformedMolecule ErrorCode = "MOL_001"
	ErrCodeMoleculeParse     ErrorCode = "MOL_002"
	ErrCodeEmptyMolecule     ErrorCode = "MOL_003"
)

// Complexity-scoring error codes.  Batch callers are expected to branch on
// these with IsCode so that a single unsupported molecule can be skipped or
// logged without aborting a whole run.
const (
	// ErrCodeUnsupportedElement is reported when an atom's element symbol is
	// absent from the valence-electron table (V = 0), which would make the
	// log2(V*b) term undefined.
	ErrCodeUnsupportedElement ErrorCode = "CPX_001"

	// ErrCodeDegenerateBondIndex is reported when an atom's bond index is
	// zero (no non-hydrogen bonds), which would also make log2(V*b) undefined.
	ErrCodeDegenerateBondIndex ErrorCode = "CPX_002"

	// ErrCodeMissingAnnotation is reported when the externally supplied
	// symmetry ranks or stereocenter flags do not cover every atom.
	ErrCodeMissingAnnotation ErrorCode = "CPX_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes for the API layer.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeValidation: http.StatusUnprocessableEntity,
	ErrCodeIO:         http.StatusInternalServerError,

	ErrCodeMalformedMolecule: http.StatusBadRequest,
	ErrCodeMoleculeParse:     http.StatusBadRequest,
	ErrCodeEmptyMolecule:     http.StatusBadRequest,

	ErrCodeUnsupportedElement:  http.StatusUnprocessableEntity,
	ErrCodeDegenerateBondIndex: http.StatusUnprocessableEntity,
	ErrCodeMissingAnnotation:   http.StatusUnprocessableEntity,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:   "internal error",
	ErrCodeBadRequest: "bad request",
	ErrCodeNotFound:   "resource not found",
	ErrCodeValidation: "validation failed",
	ErrCodeIO:         "i/o failure",

	ErrCodeMalformedMolecule: "malformed molecule",
	ErrCodeMoleculeParse:     "failed to parse molecule",
	ErrCodeEmptyMolecule:     "molecule contains no atoms",

	ErrCodeUnsupportedElement:  "unsupported element",
	ErrCodeDegenerateBondIndex: "degenerate bond index",
	ErrCodeMissingAnnotation:   "missing precomputed annotation",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// ModuleForCode returns the module prefix of an ErrorCode ("MOL", "CPX", ...).
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
