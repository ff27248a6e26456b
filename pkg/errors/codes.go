package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
// The prefix before the underscore names the module that owns it.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	CodeOK            ErrorCode = "OK"
	CodeUnknown       ErrorCode = "COMMON_000"
	CodeInternal      ErrorCode = "COMMON_001"
	CodeInvalidParam  ErrorCode = "COMMON_002"
	CodeNotFound      ErrorCode = "COMMON_005"
	CodeConflict      ErrorCode = "COMMON_006"
	CodeTimeout       ErrorCode = "COMMON_009"
	CodeValidation    ErrorCode = "COMMON_010"
	CodeSerialization ErrorCode = "COMMON_011"
)

// Classification engine error codes
const (
	// CodeUnknownHazardClass is raised when a slot outside the fixed set is
	// addressed. Programming error, always fatal.
	CodeUnknownHazardClass ErrorCode = "GHS_001"
	// CodeReferenceLookupMiss marks a code absent from an exhaustive
	// reference table (chapters, hazard statements). Fatal.
	CodeReferenceLookupMiss ErrorCode = "GHS_002"
	// CodeUnrecognizedVariant marks an overloaded chapter code whose text
	// carries none of the expected keywords. Recoverable.
	CodeUnrecognizedVariant ErrorCode = "GHS_003"
	// CodeMalformedPage marks a page or row whose shape does not match the
	// source layout. Recoverable: only that page is dropped.
	CodeMalformedPage ErrorCode = "GHS_004"
	// CodeNoTranslation marks a source-scheme code with no target-scheme
	// equivalent. Recoverable.
	CodeNoTranslation  ErrorCode = "GHS_005"
	CodeEmptyBatchList ErrorCode = "GHS_006"
)

// Source reader error codes
const (
	CodeSourceOpen        ErrorCode = "SRC_001"
	CodeSourceRead        ErrorCode = "SRC_002"
	CodeUnsupportedFormat ErrorCode = "SRC_003"
	CodeSourceEncoding    ErrorCode = "SRC_004"
	CodeSheetNotFound     ErrorCode = "SRC_005"
)

// Output sink error codes
const (
	CodeSinkWrite   ErrorCode = "OUT_001"
	CodeSinkConnect ErrorCode = "OUT_002"
	CodeSinkMigrate ErrorCode = "OUT_003"
	CodeLockHeld    ErrorCode = "OUT_004"
	CodeLockLost    ErrorCode = "OUT_005"
	CodeMetricsPush ErrorCode = "OUT_006"
)

// Configuration error codes
const (
	CodeConfigLoad    ErrorCode = "CFG_001"
	CodeConfigInvalid ErrorCode = "CFG_002"
)

// recoverable lists the codes that are reported as diagnostics rather than
// aborting the enclosing workflow.
var recoverable = map[ErrorCode]struct{}{
	CodeUnrecognizedVariant: {},
	CodeMalformedPage:       {},
	CodeNoTranslation:       {},
}

// IsRecoverable reports whether code denotes a per-row or per-page condition.
func IsRecoverable(code ErrorCode) bool {
	_, ok := recoverable[code]
	return ok
}

// ModuleForCode returns the module prefix of an ErrorCode, e.g. "GHS".
func ModuleForCode(code ErrorCode) string {
	s := string(code)
	if i := strings.IndexByte(s, '_'); i > 0 {
		return s[:i]
	}
	return s
}
