package domain

// ActorKind tags the variant of an Actor. Policy code dispatches on it with
// an exhaustive switch rather than checking optional fields.
type ActorKind int

const (
	ActorAnonymous ActorKind = iota
	ActorUser
	ActorAdmin
)

// Actor is the request-scoped identity derived from a verified credential.
// It is never persisted; an anonymous actor carries no id.
type Actor struct {
	Kind ActorKind
	ID   int64
}

// Anonymous returns the actor used for requests without a valid credential.
func Anonymous() Actor {
	return Actor{Kind: ActorAnonymous}
}

// ActorFor builds an authenticated actor from credential claims. Any role
// other than admin is treated as a regular user.
func ActorFor(id int64, role Role) Actor {
	if role == RoleAdmin {
		return Actor{Kind: ActorAdmin, ID: id}
	}
	return Actor{Kind: ActorUser, ID: id}
}

// IsAnonymous reports whether the actor carries no authenticated identity.
func (a Actor) IsAnonymous() bool {
	return a.Kind == ActorAnonymous
}
