package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// FailureKind says why a generation call failed. The retry policy and the
// chat engine's apology boundary branch on the kind, never on SDK errors.
type FailureKind int

const (
	// FailUnreachable covers transport problems and provider-side 5xx.
	FailUnreachable FailureKind = iota

	// FailThrottled means the provider refused the call for rate limiting.
	FailThrottled

	// FailMalformed means the model answered but the output was unusable:
	// not JSON, or JSON that misses the requested schema. This is the
	// quiz generator's malformed-question case.
	FailMalformed

	// FailTruncated means a structured response hit the token cap before
	// completing, so its JSON cannot be trusted. Prose that hits the cap
	// is not an error; a clipped story beat still reads fine.
	FailTruncated
)

func (k FailureKind) String() string {
	switch k {
	case FailThrottled:
		return "throttled"
	case FailMalformed:
		return "malformed"
	case FailTruncated:
		return "truncated"
	default:
		return "unreachable"
	}
}

// GenerationError is the one error type this package returns for failed
// calls. Output carries whatever the model produced, when anything; Wait
// carries the provider's throttle hint, when it gave one.
type GenerationError struct {
	Kind   FailureKind
	Output json.RawMessage
	Wait   time.Duration
	cause  error
}

func (e *GenerationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("generation failed (%s)", e.Kind)
}

func (e *GenerationError) Unwrap() error { return e.cause }

// KindOf classifies err. The second result is false for errors that did
// not come out of this package, such as raw transport glue.
func KindOf(err error) (FailureKind, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}

func unreachable(cause error) *GenerationError {
	return &GenerationError{Kind: FailUnreachable, cause: cause}
}

func throttled(cause error, wait time.Duration) *GenerationError {
	return &GenerationError{Kind: FailThrottled, Wait: wait, cause: cause}
}

func malformed(output json.RawMessage, cause error) *GenerationError {
	return &GenerationError{Kind: FailMalformed, Output: output, cause: cause}
}

func truncated(output json.RawMessage) *GenerationError {
	return &GenerationError{Kind: FailTruncated, Output: output}
}
