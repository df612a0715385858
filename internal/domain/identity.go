package domain

// Identity is the verified caller extracted from a bearer token. It is a
// point-in-time snapshot of the account at token issuance; role changes
// after issuance are not reflected until the next login.
type Identity struct {
	ID    string
	Email string
	Role  Role
}
