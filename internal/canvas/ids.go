package canvas

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource hands out shape identifiers. Injectable so shape creation is
// reproducible in tests; identifiers are unique within a document session
// and never reused.
type IDSource interface {
	NewID() string
}

// UUIDSource is the production id source.
type UUIDSource struct{}

func (UUIDSource) NewID() string {
	return uuid.NewString()
}

// SeqSource is a deterministic counter-based source for tests.
type SeqSource struct {
	n int
}

func (s *SeqSource) NewID() string {
	s.n++
	return fmt.Sprintf("shape-%d", s.n)
}
