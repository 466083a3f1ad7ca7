// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrInvalidHandle      = errors.New("invalid handle")
	ErrInvalidFormat      = errors.New("invalid sample format")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidValue       = errors.New("invalid property value")
	ErrInvalidProperty    = errors.New("unknown or read-only property")
	ErrBufferQueued       = errors.New("buffer is still queued on a source")
	ErrBufferNotProcessed = errors.New("buffer has not been fully played")
)

// Code is the one-shot error code reported by GetError. Reading it clears
// it, so a caller observes each recorded failure at most once.
type Code int32

const (
	CodeNoError Code = iota
	CodeInvalidOperation
)

func (c Code) String() string {
	switch c {
	case CodeNoError:
		return "no error"
	case CodeInvalidOperation:
		return "invalid operation"
	}

	return "unknown error code"
}
