package registry

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports an argument bag that failed schema validation.
// Fields holds the names of the offending arguments.
type ValidationError struct {
	Fields  []string
	message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid arguments: " + e.message
	}
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return fmt.Sprintf("invalid arguments (%s): %s", strings.Join(fields, ", "), e.message)
}

// NotFoundError reports a capability lookup that matched nothing.
type NotFoundError struct {
	Category Category
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Category, e.Name)
}

// DomainError reports input that is schema-valid but rejected by the
// capability's own rules, e.g. division by zero.
type DomainError struct {
	msg string
}

func (e *DomainError) Error() string { return e.msg }

// Domainf builds a DomainError.
func Domainf(format string, args ...any) error {
	return &DomainError{msg: fmt.Sprintf(format, args...)}
}

// ConfigError reports a missing or unusable credential or setting. It is a
// call-time failure for the capability that needs the setting, never a crash.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// Configf builds a ConfigError.
func Configf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// GenerationError wraps a failure from the external image generation call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "image generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generatef builds a GenerationError from a message.
func Generatef(format string, args ...any) error {
	return &GenerationError{Err: fmt.Errorf(format, args...)}
}
