package fx

import (
	"errors"
	"strconv"
)

// Arithmetic and parsing errors
var (
	ErrDivideByZero = errors.New("fx: division by zero")
	ErrFormat       = errors.New("fx: invalid number format")
	ErrShortBuffer  = errors.New("fx: short buffer")
)

// FormatError describes a decimal string that Parse could not accept.
// It matches ErrFormat with errors.Is.
type FormatError struct {
	Input string
	Pos   int
}

func (e *FormatError) Error() string {
	if e.Pos < 0 {
		return ErrFormat.Error() + ": " + strconv.Quote(e.Input)
	}
	return ErrFormat.Error() + ": " + strconv.Quote(e.Input) + " at offset " + strconv.Itoa(e.Pos)
}

func (e *FormatError) Unwrap() error { return ErrFormat }
