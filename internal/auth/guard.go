package auth

import "github.com/pageza/recipebook/backend/internal/models"

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Capability is a predicate over an actor's role set.
type Capability func(roles []string) bool

// HasRole returns a Capability that holds when role is in the set.
func HasRole(role string) Capability {
	return func(roles []string) bool {
		return models.StringArray(roles).Contains(role)
	}
}

// Guard decides whether an actor may mutate a recipe.
type Guard struct {
	elevated Capability
}

// NewGuard returns a Guard that lets owners, and actors holding the elevated
// capability, mutate recipes.
func NewGuard(elevated Capability) *Guard {
	if elevated == nil {
		elevated = func([]string) bool { return false }
	}
	return &Guard{elevated: elevated}
}

// CanMutate allows the recipe's owner regardless of role, and any elevated actor
// regardless of identity.
func (g *Guard) CanMutate(actor Actor, recipe *models.Recipe) Decision {
	if !actor.Anonymous() && recipe.CreatedBy == actor.ID {
		return Allow
	}
	if g.elevated(actor.Roles) {
		return Allow
	}
	return Deny
}
