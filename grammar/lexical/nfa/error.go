package nfa

import "fmt"

var (
	// lexical errors
	synErrIncompletedEscSeq = fmt.Errorf("incompleted escape sequence; unexpected EOF following \\")
	synErrBExpNoElem        = fmt.Errorf("a bracket expression must include at least one character")
	synErrBExpUnclosed      = fmt.Errorf("unclosed bracket expression")
	synErrBExpNoInitiator   = fmt.Errorf("] needs preceding [")
	synErrRangeInvalidOrder = fmt.Errorf("a range expression with invalid order")

	// syntax errors
	synErrNullPattern      = fmt.Errorf("a pattern must include at least one character")
	synErrAltLackOfOperand = fmt.Errorf("a union or concatenation must have two operands")
	synErrRepNoTarget      = fmt.Errorf("a repeat expression must have an operand")
	synErrGroupNoElem      = fmt.Errorf("a grouping expression must include at least one character")
	synErrGroupUnclosed    = fmt.Errorf("unclosed grouping expression")
	synErrGroupNoInitiator = fmt.Errorf(") needs preceding (")
)

// SyntaxError reports a malformed regular expression. Col is the 1-based rune offset of the
// offending character; Col is 0 when the error concerns the whole pattern.
type SyntaxError struct {
	Pattern string
	Col     int
	Cause   error
}

func (e *SyntaxError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("%q: col %v: %v", e.Pattern, e.Col, e.Cause)
	}
	return fmt.Sprintf("%q: %v", e.Pattern, e.Cause)
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}
