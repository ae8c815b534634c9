package account

// Account is a registered user. The password is stored and compared as an
// opaque string, matching the persisted format exactly.
type Account struct {
	Username string
	Password string
}
