package schema

import (
	"errors"
	"fmt"
	"go/token"
)

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("config error")
	// ErrSchema is matched by every *SchemaError.
	ErrSchema = errors.New("schema error")
)

// ConfigError reports a malformed or misplaced attribute.
type ConfigError struct {
	Struct string
	Attr   string
	Pos    token.Position
	Msg    string
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Attr != "" {
		msg = fmt.Sprintf("attribute %q: %s", e.Attr, e.Msg)
	}
	return withPos(e.Pos, fmt.Sprintf("%s: %s", e.Struct, msg))
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// SchemaError reports a record that cannot be turned into a view.
type SchemaError struct {
	Struct string
	Field  string
	Pos    token.Position
	Msg    string
}

func (e *SchemaError) Error() string {
	msg := e.Msg
	if e.Field != "" {
		msg = fmt.Sprintf("field %s: %s", e.Field, e.Msg)
	}
	return withPos(e.Pos, fmt.Sprintf("%s: %s", e.Struct, msg))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

func withPos(pos token.Position, msg string) string {
	if !pos.IsValid() {
		return msg
	}
	return pos.String() + ": " + msg
}
