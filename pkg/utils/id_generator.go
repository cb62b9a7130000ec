package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// AccountNumberGenerator produces unique, sortable identifiers for
// account numbers and document file names. ULIDs are timestamp-ordered
// and collision-free even at sub-second granularity.
type AccountNumberGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Next returns a bare ULID.
// Example: 01ARZ3NDEKTSV4RRFFQ69G5FAV
func (g *AccountNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// NextPrefixed returns a prefixed identifier.
// Example: CB-01ARZ3NDEKTSV4RRFFQ69G5FAV
func (g *AccountNumberGenerator) NextPrefixed(prefix string) string {
	p := "ACC"
	if prefix != "" {
		p = strings.ToUpper(prefix)
	}
	return fmt.Sprintf("%s-%s", p, g.Next())
}
