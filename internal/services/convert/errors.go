package convert

import "fmt"

type ErrorCode string

const (
	// CodeDecodeFailed means the source bytes could not be decoded as
	// an image.
	CodeDecodeFailed ErrorCode = "DECODE_FAILED"
	// CodeEncodeFailed covers resize, re-encode and PDF embedding
	// failures, including dimensions that round to zero.
	CodeEncodeFailed ErrorCode = "ENCODE_FAILED"
	// CodeEmptyOutput means single-PDF mode had no pages to write.
	CodeEmptyOutput ErrorCode = "EMPTY_OUTPUT"
)

// Error is a pipeline failure. File names the input being processed
// when the run aborted; it is empty for batch-level failures.
type Error struct {
	Code ErrorCode
	File string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.File != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.File, e.Err)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.Code, e.File)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, file string, err error) *Error {
	return &Error{Code: code, File: file, Err: err}
}
