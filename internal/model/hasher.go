package model

// PasswordHasher produces and verifies one-way password digests. Hash is
// salted and non-deterministic, so digests must never be compared directly;
// Verify is the only equality check.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
