package jwtx

// Signer is anything that can mint bearer tokens for a user.
type Signer interface {
	Alg() string
	Issue(userID, email, role string) (string, error)
}
