package model

// PasswordHasher derives and checks salted password hashes.
type PasswordHasher interface {
	Hash(password string) (hash []byte, salt []byte, err error)
	Verify(password string, hash, salt []byte) bool
}
