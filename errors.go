package ednutils

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTag is returned when a tag does not have valid symbol syntax.
	ErrInvalidTag = errors.New("invalid tag")
	// ErrUnknownTag is returned when a tag has no reader and no default reader is configured.
	ErrUnknownTag = errors.New("unknown tag")
)

// ParseError is a syntax error in EDN source text with 1-based coordinates.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}
