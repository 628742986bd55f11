package model

// ErrorKind classifies failures so each API surface can render them consistently
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication" // missing or invalid credentials/token
	KindAuthorization  ErrorKind = "authorization"  // valid identity, insufficient role
	KindNotFound       ErrorKind = "not_found"
	KindConflict       ErrorKind = "conflict" // uniqueness violation
	KindValidation     ErrorKind = "validation"
)

// Code returns the client-facing error code for the kind
func (k ErrorKind) Code() string {
	switch k {
	case KindAuthentication:
		return "UNAUTHENTICATED"
	case KindAuthorization:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindValidation:
		return "BAD_USER_INPUT"
	}
	return "INTERNAL_SERVER_ERROR"
}

// Error is a typed domain error.
// errors.Is(err, ErrNotFound) matches any not-found error regardless of message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches kind-only sentinels (those with an empty message)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Extensions exposes the error code to GraphQL clients
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Kind.Code()}
}

// Constructors

func AuthenticationError(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func AuthorizationError(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func ConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Kind sentinels
var (
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrAuthorization  = &Error{Kind: KindAuthorization}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrValidation     = &Error{Kind: KindValidation}
)

// Common errors used across the application
var (
	// Authentication/authorization
	ErrAuthenticationRequired = AuthenticationError("Authentication required")
	ErrInvalidCredentials     = AuthenticationError("Invalid credentials")
	ErrAdminRequired          = AuthorizationError("Admin access required")

	// Accounts
	ErrAccountNotFound = NotFoundError("User not found")
	ErrUsernameTaken   = ConflictError("Username already exists")
	ErrEmailTaken      = ConflictError("Email already exists")

	// Employees
	ErrEmployeeNotFound   = NotFoundError("Employee not found")
	ErrEmployeeCodeTaken  = ConflictError("Employee ID already exists")
	ErrEmployeeEmailTaken = ConflictError("Employee email already exists")
)
