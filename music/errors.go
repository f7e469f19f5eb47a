package music

import (
	"fmt"
)

// ParseError is returned when a description file does not have the
// expected structure. Where carries the location of the failure inside
// the file.
type ParseError struct {
	Path  string
	Where string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("%v: %v", e.Path, e.Msg)
	}
	return fmt.Sprintf("%v: %v: %v", e.Path, e.Where, e.Msg)
}

func parseErrorf(path, where, format string, args ...interface{}) *ParseError {
	return &ParseError{Path: path, Where: where, Msg: fmt.Sprintf(format, args...)}
}
