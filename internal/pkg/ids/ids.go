package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/panelgrid/panelgrid-backend/internal/pkg/errors"
)

// Generator hands out globally unique, time-ordered entity identifiers.
// It is injected into factories so entity construction never depends on
// the persistence layer to assign identity.
type Generator interface {
	Next() (string, error)
}

type uuidV7Generator struct {
	mu   sync.Mutex
	last string
}

// NewUUIDv7Generator returns a Generator backed by UUID version 7.
// The identifiers sort by creation time.
func NewUUIDv7Generator() Generator {
	return &uuidV7Generator{}
}

func (g *uuidV7Generator) Next() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrIdentifierCollision, err)
	}
	next := id.String()
	g.mu.Lock()
	defer g.mu.Unlock()
	if next == g.last {
		return "", fmt.Errorf("%w: generator repeated %s", apperrors.ErrIdentifierCollision, next)
	}
	g.last = next
	return next, nil
}
