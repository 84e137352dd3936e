package mandel

import "errors"

// Domain errors for engine configuration and host input.
var (
	// ErrInvalidConfig indicates an engine parameter outside its valid range.
	ErrInvalidConfig = errors.New("mandel: invalid config")

	// ErrInvalidViewport indicates a non-positive side length or a NaN/Inf corner.
	ErrInvalidViewport = errors.New("mandel: invalid viewport")

	// ErrUnknownCommand indicates a navigation command name that does not parse.
	ErrUnknownCommand = errors.New("mandel: unknown command")
)

// ConfigError wraps ErrInvalidConfig with the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return ErrInvalidConfig.Error() + ": " + e.Field + " " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
