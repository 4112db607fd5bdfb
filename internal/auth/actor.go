package auth

// Actor is the authenticated caller of an operation.
type Actor struct {
	// ID is the caller's identity, recorded as a recipe's owner.
	ID    string
	Roles []string
}

// Anonymous reports whether no identity is attached.
func (a Actor) Anonymous() bool {
	return a.ID == ""
}
