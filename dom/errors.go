package dom

import "fmt"

// DOMError represents a DOM exception with a name, a legacy numeric code, and
// a message. It is used as the error value for all user-visible failures.
type DOMError struct {
	Name    string
	Code    int
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Legacy DOMException codes. New exception names not in the legacy table
// (such as InvalidNodeTypeError) reuse the codes browsers assign to them.
const (
	CodeIndexSizeError           = 1
	CodeHierarchyRequestError    = 3
	CodeWrongDocumentError       = 4
	CodeInvalidCharacterError    = 5
	CodeNotFoundError            = 8
	CodeNotSupportedError        = 9
	CodeInUseAttributeError      = 10
	CodeInvalidStateError        = 11
	CodeSyntaxError              = 12
	CodeInvalidModificationError = 13
	CodeNamespaceError           = 14
	CodeInvalidAccessError       = 15
	CodeAbortError               = 20
	CodeInvalidNodeTypeError     = 24
)

// Common DOM error constructors

// ErrHierarchyRequest creates a HierarchyRequestError.
func ErrHierarchyRequest(message string) *DOMError {
	return &DOMError{Name: "HierarchyRequestError", Code: CodeHierarchyRequestError, Message: message}
}

// ErrNotFound creates a NotFoundError.
func ErrNotFound(message string) *DOMError {
	return &DOMError{Name: "NotFoundError", Code: CodeNotFoundError, Message: message}
}

// ErrInvalidCharacter creates an InvalidCharacterError.
func ErrInvalidCharacter(message string) *DOMError {
	return &DOMError{Name: "InvalidCharacterError", Code: CodeInvalidCharacterError, Message: message}
}

// ErrNotSupported creates a NotSupportedError.
func ErrNotSupported(message string) *DOMError {
	return &DOMError{Name: "NotSupportedError", Code: CodeNotSupportedError, Message: message}
}

// ErrInvalidState creates an InvalidStateError.
func ErrInvalidState(message string) *DOMError {
	return &DOMError{Name: "InvalidStateError", Code: CodeInvalidStateError, Message: message}
}

// ErrIndexSize creates an IndexSizeError.
func ErrIndexSize(message string) *DOMError {
	return &DOMError{Name: "IndexSizeError", Code: CodeIndexSizeError, Message: message}
}

// ErrWrongDocument creates a WrongDocumentError.
func ErrWrongDocument(message string) *DOMError {
	return &DOMError{Name: "WrongDocumentError", Code: CodeWrongDocumentError, Message: message}
}

// ErrNamespace creates a NamespaceError.
func ErrNamespace(message string) *DOMError {
	return &DOMError{Name: "NamespaceError", Code: CodeNamespaceError, Message: message}
}

// ErrInUseAttribute creates an InUseAttributeError.
func ErrInUseAttribute(message string) *DOMError {
	return &DOMError{Name: "InUseAttributeError", Code: CodeInUseAttributeError, Message: message}
}

// ErrSyntax creates a SyntaxError.
func ErrSyntax(message string) *DOMError {
	return &DOMError{Name: "SyntaxError", Code: CodeSyntaxError, Message: message}
}

// ErrInvalidModification creates an InvalidModificationError.
func ErrInvalidModification(message string) *DOMError {
	return &DOMError{Name: "InvalidModificationError", Code: CodeInvalidModificationError, Message: message}
}

// ErrInvalidAccess creates an InvalidAccessError.
func ErrInvalidAccess(message string) *DOMError {
	return &DOMError{Name: "InvalidAccessError", Code: CodeInvalidAccessError, Message: message}
}

// ErrAbort creates an AbortError.
func ErrAbort(message string) *DOMError {
	return &DOMError{Name: "AbortError", Code: CodeAbortError, Message: message}
}

// ErrInvalidNodeType creates an InvalidNodeTypeError.
func ErrInvalidNodeType(message string) *DOMError {
	return &DOMError{Name: "InvalidNodeTypeError", Code: CodeInvalidNodeTypeError, Message: message}
}
