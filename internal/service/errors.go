package service

import "errors"

var (
	// ErrInvalidSteamID is returned when the identifier is not a 17-digit SteamID64.
	ErrInvalidSteamID = errors.New("please enter a valid 17-digit SteamID64")

	// ErrInvalidParameter matches every *ParameterError.
	ErrInvalidParameter = errors.New("invalid inventory query parameter")
)

// ParameterError reports a malformed query parameter.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
