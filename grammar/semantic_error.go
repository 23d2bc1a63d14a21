package grammar

var (
	// ErrGrammarSyntax matches (errors.Is) every error caused by a malformed production line.
	ErrGrammarSyntax = &SemanticError{message: "grammar syntax error"}

	// ErrSemanticRule matches (errors.Is) every error caused by a malformed action line.
	ErrSemanticRule = &SemanticError{message: "semantic rule error"}
)

type SemanticError struct {
	message string
	class   *SemanticError
}

func newSyntaxError(message string) *SemanticError {
	return &SemanticError{
		message: message,
		class:   ErrGrammarSyntax,
	}
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
		class:   ErrSemanticRule,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

func (e *SemanticError) Is(target error) bool {
	return e.class != nil && target == e.class
}

var (
	synErrNoProduction     = newSyntaxError("a grammar needs at least one production")
	synErrNoArrow          = newSyntaxError("a production needs '->'")
	synErrLHSAlternative   = newSyntaxError("'|' cannot appear on the left of '->'")
	synErrInvalidLHS       = newSyntaxError("a production needs exactly one non-terminal on the left of '->'")
	synErrEmptyAlternative = newSyntaxError("an alternative needs at least one symbol; use EPSILON for the empty alternative")
	synErrReservedSymbol   = newSyntaxError("the end-of-input marker cannot appear in productions")
	synErrEBNFUnsupported  = newSyntaxError("unsupported EBNF expression")

	semErrActionFormat      = newSemanticError("an action line must look like {i:j, ...}")
	semErrActionNoAlt       = newSemanticError("an action line must follow a production")
	semErrActionPosition    = newSemanticError("an action refers to a position outside the alternative")
	semErrActionSlot        = newSemanticError("an action slot must be -1 or a non-negative integer")
	semErrActionDupPosition = newSemanticError("an action line maps the same position twice")
	semErrActionDuplicated  = newSemanticError("an alternative can have only one action line")
)
