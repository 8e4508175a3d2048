// Package authcode translates identity-provider error codes into the fixed set
// of user-facing categories and messages shown by the dashboard.
package authcode

// Category buckets provider failures for the UI layer.
type Category string

const (
	AccountNotFound          Category = "account_not_found"
	InvalidCredentials       Category = "invalid_credentials"
	AccountAlreadyExists     Category = "account_already_exists"
	WeakPassword             Category = "weak_password"
	InvalidEmailFormat       Category = "invalid_email_format"
	RateLimited              Category = "rate_limited"
	NetworkFailure           Category = "network_failure"
	InteractiveAuthCancelled Category = "interactive_auth_cancelled"
	ConcurrentAuthInProgress Category = "concurrent_auth_in_progress"
	Unknown                  Category = "unknown"
)

// Error is a translated authentication failure. Message is the exact string
// presented to the user.
type Error struct {
	Category Category
	Code     string
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

type mapping struct {
	category Category
	message  string
}

var byCode = map[string]mapping{
	"auth/user-not-found":         {AccountNotFound, "No account found with this email address."},
	"auth/wrong-password":         {InvalidCredentials, "Incorrect password. Please try again."},
	"auth/email-already-in-use":   {AccountAlreadyExists, "An account with this email already exists."},
	"auth/weak-password":          {WeakPassword, "Password should be at least 6 characters long."},
	"auth/invalid-email":          {InvalidEmailFormat, "Please enter a valid email address."},
	"auth/too-many-requests":      {RateLimited, "Too many failed attempts. Please try again later."},
	"auth/network-request-failed": {NetworkFailure, "Network error. Please check your connection."},
	"auth/popup-closed-by-user":   {InteractiveAuthCancelled, "Sign-in was cancelled. Please try again."},
	"auth/cancelled-popup-request": {ConcurrentAuthInProgress,
		"Another sign-in attempt is in progress."},
}

const unknownMessage = "An error occurred during authentication. Please try again."

// FromCode maps a provider error code to a translated Error. Unrecognized
// codes map to the Unknown category with a generic retry-suggesting message;
// the mapping never fails.
func FromCode(code string) *Error {
	if m, ok := byCode[Normalize(code)]; ok {
		return &Error{Category: m.category, Code: Normalize(code), Message: m.message}
	}
	return &Error{Category: Unknown, Code: code, Message: unknownMessage}
}

// restCodes maps Identity Toolkit REST error identifiers onto the provider
// code namespace used by the taxonomy. The REST API reports codes like
// EMAIL_NOT_FOUND where the client SDKs report auth/user-not-found.
var restCodes = map[string]string{
	"EMAIL_NOT_FOUND":             "auth/user-not-found",
	"INVALID_PASSWORD":            "auth/wrong-password",
	"INVALID_LOGIN_CREDENTIALS":   "auth/wrong-password",
	"EMAIL_EXISTS":                "auth/email-already-in-use",
	"WEAK_PASSWORD":               "auth/weak-password",
	"INVALID_EMAIL":               "auth/invalid-email",
	"MISSING_EMAIL":               "auth/invalid-email",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "auth/too-many-requests",
}

// Normalize converts a REST error identifier to its provider code. Codes
// already in the auth/ namespace, and codes with no known translation, pass
// through unchanged.
func Normalize(code string) string {
	// WEAK_PASSWORD arrives suffixed with the minimum length requirement.
	if len(code) >= len("WEAK_PASSWORD") && code[:len("WEAK_PASSWORD")] == "WEAK_PASSWORD" {
		return "auth/weak-password"
	}
	if mapped, ok := restCodes[code]; ok {
		return mapped
	}
	return code
}
