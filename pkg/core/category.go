package core

// ErrorCategory classifies protocol errors for reporting
type ErrorCategory int

const (
	ErrCategoryNone       ErrorCategory = iota // No error
	ErrCategoryValidation                      // Rejected at construction time (unsupported key type, bad value)
	ErrCategoryDecode                          // Payload could not be turned back into a finder/command/result
	ErrCategoryRemote                          // The remote endpoint reported a failure
	ErrCategoryConfig                          // Invalid configuration
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryValidation:
		return "validation"
	case ErrCategoryDecode:
		return "decode"
	case ErrCategoryRemote:
		return "remote"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}
