package session

import "context"

// Store persists result state between requests of the same session.
// Load returns an empty state for unknown sessions; callers own the
// returned state until they Save it back.
type Store interface {
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, state *State) error
	HealthCheck(ctx context.Context) map[string]string
}
