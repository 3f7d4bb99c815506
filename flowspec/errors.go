package flowspec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDecode indicates a specification document that could not be decoded.
var ErrDecode = errors.New("decode error")

// DecodeError reports a failure to decode a specification document.
type DecodeError struct {
	Format Format
	Path   string // source file, when known
	Msg    string
	Err    error // underlying parser error, if any
}

func (e *DecodeError) Error() string {
	where := string(e.Format)
	if e.Path != "" {
		where = e.Path
	}
	msg := e.Msg
	if msg == "" && e.Err != nil {
		// yaml.v3 prefixes its own messages with "yaml: ".
		msg = strings.TrimPrefix(e.Err.Error(), string(e.Format)+": ")
	}
	return fmt.Sprintf("%s: %s: %s", ErrDecode, where, msg)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}
