package subscription

import "context"

type actorContextKey struct{}

// WithActor stores the authenticated actor in the context. The HTTP layer
// calls this after authentication so handlers can hand the actor to the
// service.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext retrieves the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
