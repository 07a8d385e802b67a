package errs

import "fmt"

// Kind classifies why a generation config was rejected.
type Kind string

const (
	KindNoCharacterType  Kind = "no_character_type_selected"
	KindInvalidLength    Kind = "invalid_length"
	KindInvalidWordCount Kind = "invalid_word_count"
	KindInvalidSeparator Kind = "invalid_separator"
	KindInvalidSymbols   Kind = "invalid_symbols"
	KindEmptyWordList    Kind = "empty_word_list"
	KindUnknownMode      Kind = "unknown_mode"
)

// ConfigError reports a rejected generation config. errors.Is(err, ErrInvalidConfig)
// holds for every ConfigError; Unwrap exposes the underlying cause, if any.
type ConfigError struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

// NewConfigError builds a ConfigError without an underlying cause.
func NewConfigError(kind Kind, field, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid config: " + e.Msg
	}
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes every ConfigError match ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }
