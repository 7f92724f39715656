package actor

import "context"

const (
	RoleProvider = "provider"
	RoleSeeker   = "seeker"
)

// Actor is the authenticated caller of a request.
type Actor struct {
	ID   string
	Role string
	Name string
}

func (a Actor) IsProvider() bool {
	return a.Role == RoleProvider
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok && a.Authenticated()
}
