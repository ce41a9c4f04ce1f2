package model

import "fmt"

// ErrorCode is a machine-readable error class, mirroring the taxonomy in
// the design's error-handling section.
type ErrorCode string

const (
	ECInput     ErrorCode = "ERR_INPUT"
	ECParse     ErrorCode = "ERR_PARSE"
	ECSemantic  ErrorCode = "ERR_SEMANTIC"
	ECImport    ErrorCode = "ERR_IMPORT"
	ECExecution ErrorCode = "ERR_EXECUTION"
	ECSignal    ErrorCode = "ERR_SIGNAL"
	ECConfig    ErrorCode = "ERR_CONFIG"
	ECUnknown   ErrorCode = "ERR_UNKNOWN"
)

// CLIError is the error type returned across component boundaries so the
// driver can report a code and message without type-switching on internal
// error values.
type CLIError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e CLIError) Unwrap() error { return e.Err }

// Wrap builds a CLIError with the given code, preserving err for errors.Is/As.
func Wrap(code ErrorCode, message string, err error) CLIError {
	return CLIError{Code: code, Message: message, Err: err}
}

// Pos is a line:col position used by parser errors.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ParseError reports a syntax problem with a pointer to the offending
// position, per the grammar's "first violation" error discipline.
type ParseError struct {
	Pos      Pos
	Message  string
	Expected string
}

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("parse error at %s: %s, expected %s", e.Pos, e.Message, e.Expected)
	}
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Message)
}
