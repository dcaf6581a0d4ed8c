// Package access implements the credential gate shared by every privileged
// operation: a constant-time comparison of a presented secret against the
// configured one, plus the masked form shown to admin UIs.
package access

import "crypto/subtle"

// Masked is the fixed placeholder returned instead of a real secret.
const Masked = "********"

// Verify reports whether provided matches expected. An empty expected value
// never verifies, so an unset secret disables the operation it guards.
func Verify(provided, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

// Mask hides secret behind a fixed-length placeholder. The length of the
// real secret is not revealed. An empty secret masks to "".
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	return Masked
}
