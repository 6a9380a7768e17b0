package closer

import "context"

// Capabilities is the set of backend operations the handler drives.
// One implementation exists per entity kind; the handler never knows
// which API is behind it.
type Capabilities interface {
	// GetDetails fetches the entity. It returns an error when the entity
	// does not exist.
	GetDetails(ctx context.Context, owner, repo string, number int) (*Details, error)
	// AddComment posts body on the entity.
	AddComment(ctx context.Context, owner, repo string, number int, body string) (*Comment, error)
	// CloseEntity changes the entity's state to closed.
	CloseEntity(ctx context.Context, owner, repo string, number int) (*Closed, error)
}
