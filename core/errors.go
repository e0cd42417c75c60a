package core

import "errors"

var (
	// ErrTextTooShort indicates the query text is below the minimum length after trimming.
	ErrTextTooShort = errors.New("query text must be at least 3 characters")

	// ErrTextTooLong indicates the query text exceeds the maximum length.
	ErrTextTooLong = errors.New("query text must not exceed 5000 characters")

	// ErrScoreOutOfRange indicates a confidence score outside the [0,1] domain.
	ErrScoreOutOfRange = errors.New("confidence score must be between 0.0 and 1.0")

	// ErrUnknownIntent indicates a string that names no intent variant.
	ErrUnknownIntent = errors.New("unknown intent")

	// ErrUnknownConfidenceLevel indicates a string that names no confidence level.
	ErrUnknownConfidenceLevel = errors.New("unknown confidence level")

	// ErrEmptyErrorMessage indicates an attempt to mark a result failed without a message.
	ErrEmptyErrorMessage = errors.New("failed status requires a non-empty error message")

	// ErrResultSealed indicates a mutation attempt on a result already in a terminal state.
	ErrResultSealed = errors.New("execution result is sealed")
)
