package authcode

import "testing"

func TestFromCodeKnownCodes(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		message  string
	}{
		{"auth/user-not-found", AccountNotFound, "No account found with this email address."},
		{"auth/wrong-password", InvalidCredentials, "Incorrect password. Please try again."},
		{"auth/email-already-in-use", AccountAlreadyExists, "An account with this email already exists."},
		{"auth/weak-password", WeakPassword, "Password should be at least 6 characters long."},
		{"auth/invalid-email", InvalidEmailFormat, "Please enter a valid email address."},
		{"auth/too-many-requests", RateLimited, "Too many failed attempts. Please try again later."},
		{"auth/network-request-failed", NetworkFailure, "Network error. Please check your connection."},
		{"auth/popup-closed-by-user", InteractiveAuthCancelled, "Sign-in was cancelled. Please try again."},
		{"auth/cancelled-popup-request", ConcurrentAuthInProgress, "Another sign-in attempt is in progress."},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			err := FromCode(tc.code)
			if err.Category != tc.category {
				t.Fatalf("FromCode(%q).Category = %q, want %q", tc.code, err.Category, tc.category)
			}
			if err.Message != tc.message {
				t.Fatalf("FromCode(%q).Message = %q, want %q", tc.code, err.Message, tc.message)
			}
			if err.Error() != tc.message {
				t.Fatalf("Error() = %q, want the user-facing message", err.Error())
			}
		})
	}
}

func TestFromCodeUnknown(t *testing.T) {
	err := FromCode("auth/some-future-code")
	if err.Category != Unknown {
		t.Fatalf("Category = %q, want unknown", err.Category)
	}
	if err.Message != "An error occurred during authentication. Please try again." {
		t.Fatalf("unexpected fallback message %q", err.Message)
	}
	if err.Code != "auth/some-future-code" {
		t.Fatalf("Code = %q, want the original code preserved", err.Code)
	}
}

func TestNormalizeRESTCodes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"EMAIL_NOT_FOUND", "auth/user-not-found"},
		{"INVALID_PASSWORD", "auth/wrong-password"},
		{"INVALID_LOGIN_CREDENTIALS", "auth/wrong-password"},
		{"EMAIL_EXISTS", "auth/email-already-in-use"},
		{"WEAK_PASSWORD", "auth/weak-password"},
		{"WEAK_PASSWORD : Password should be at least 6 characters", "auth/weak-password"},
		{"INVALID_EMAIL", "auth/invalid-email"},
		{"MISSING_EMAIL", "auth/invalid-email"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", "auth/too-many-requests"},
		{"auth/wrong-password", "auth/wrong-password"},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromCodeNormalizesRESTIdentifiers(t *testing.T) {
	err := FromCode("EMAIL_NOT_FOUND")
	if err.Category != AccountNotFound {
		t.Fatalf("Category = %q, want account_not_found", err.Category)
	}
	if err.Code != "auth/user-not-found" {
		t.Fatalf("Code = %q, want normalized provider code", err.Code)
	}
}
