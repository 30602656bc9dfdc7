package shelf

import "fmt"

// ErrorKind categorizes a ShelfError the way the caller is expected to
// react to it, per the error taxonomy.
type ErrorKind int

const (
	// ErrConfig covers malformed configuration, unknown scope keys,
	// duplicate behavior names, and parent cycles. Fatal at load time.
	ErrConfig ErrorKind = iota
	// ErrConnection covers a transport unable to reach any node.
	ErrConnection
	// ErrTimeout covers abandon_after/wait_for_call elapsing.
	ErrTimeout
	// ErrRecordExists covers Insert on an existing key.
	ErrRecordExists
	// ErrRecordNotFound covers Update on a missing key.
	ErrRecordNotFound
	// ErrGenerationMismatch covers an ensureGenerationIs race loss.
	ErrGenerationMismatch
	// ErrTxnRetryable covers BLOCKED, VERSION_MISMATCH, TXN_FAILED.
	ErrTxnRetryable
	// ErrInDoubt covers a write whose outcome is unknown.
	ErrInDoubt
	// ErrAuth covers credential failures.
	ErrAuth
	// ErrAuthz covers permission failures.
	ErrAuthz
	// ErrQuota covers capacity failures.
	ErrQuota
	// ErrInvalidArgument covers empty page size, invalid ranges, a
	// Truncate on keys, and other call-site misuse. Mixed namespaces are a
	// builder-shape violation and panic with an ErrConfig error instead.
	ErrInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConfig:
		return "ConfigError"
	case ErrConnection:
		return "ConnectionError"
	case ErrTimeout:
		return "Timeout"
	case ErrRecordExists:
		return "RecordExists"
	case ErrRecordNotFound:
		return "RecordNotFound"
	case ErrGenerationMismatch:
		return "GenerationMismatch"
	case ErrTxnRetryable:
		return "TxnRetryable"
	case ErrInDoubt:
		return "InDoubt"
	case ErrAuth:
		return "Auth"
	case ErrAuthz:
		return "Authz"
	case ErrQuota:
		return "Quota"
	case ErrInvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// ShelfError is the single error type returned across the public surface.
// Per-record failures never use it — they ride inside RecordResult instead
// unless the caller opted into ExceptionPolicyThrowAny.
type ShelfError struct {
	Kind    ErrorKind
	Message string
	InDoubt bool
}

// Error implements the error interface.
func (e *ShelfError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewConfigError creates a ShelfError for malformed configuration.
func NewConfigError(message string) *ShelfError {
	return &ShelfError{Kind: ErrConfig, Message: message}
}

// NewConnectionError creates a ShelfError for an unreachable transport.
func NewConnectionError(message string) *ShelfError {
	return &ShelfError{Kind: ErrConnection, Message: message}
}

// NewTimeoutError creates a ShelfError for an elapsed deadline.
func NewTimeoutError(message string) *ShelfError {
	return &ShelfError{Kind: ErrTimeout, Message: message}
}

// NewRecordExistsError creates a ShelfError for an Insert on an existing key.
func NewRecordExistsError() *ShelfError {
	return &ShelfError{Kind: ErrRecordExists, Message: "record already exists"}
}

// NewRecordNotFoundError creates a ShelfError for an Update on a missing key.
func NewRecordNotFoundError() *ShelfError {
	return &ShelfError{Kind: ErrRecordNotFound, Message: "record not found"}
}

// NewGenerationMismatchError creates a ShelfError for a lost generation race.
func NewGenerationMismatchError() *ShelfError {
	return &ShelfError{Kind: ErrGenerationMismatch, Message: "generation mismatch"}
}

// NewInDoubtError creates a ShelfError for a write of unknown outcome.
func NewInDoubtError(message string) *ShelfError {
	return &ShelfError{Kind: ErrInDoubt, Message: message, InDoubt: true}
}

// NewInvalidArgumentError creates a ShelfError for call-site misuse.
func NewInvalidArgumentError(message string) *ShelfError {
	return &ShelfError{Kind: ErrInvalidArgument, Message: message}
}

// NewTxnRetryableError creates a ShelfError for a BLOCKED, VERSION_MISMATCH,
// or TXN_FAILED outcome — the three results a TransactionalSession retries
// the whole closure for.
func NewTxnRetryableError(message string) *ShelfError {
	return &ShelfError{Kind: ErrTxnRetryable, Message: message}
}

// IsErrorKind reports whether err is a *ShelfError of the given kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	se, ok := err.(*ShelfError)
	return ok && se.Kind == kind
}
