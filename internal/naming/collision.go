package naming

import (
	"fmt"
	"sync"

	"github.com/backmassage/resizehelper/internal/config"
)

// CollisionTracker records which (source, job) unit owns each output path.
// It never renames: output paths are fixed by layout, so a repeat claim by
// a different unit means the earlier file gets overwritten. All methods are
// goroutine-safe.
type CollisionTracker struct {
	mu     sync.Mutex
	owners map[string]string // output path → owning unit key
}

// NewCollisionTracker creates a ready-to-use tracker.
func NewCollisionTracker() *CollisionTracker {
	return &CollisionTracker{owners: make(map[string]string)}
}

// UnitKey identifies a unit for ownership, e.g. "/in/a.png@800x600@150".
func UnitKey(src string, job config.Job) string {
	return fmt.Sprintf("%s@%s", src, job)
}

// Claim records unit as the owner of output. When another unit claimed it
// earlier, that unit's key is returned with overwritten set.
func (ct *CollisionTracker) Claim(output, unit string) (previous string, overwritten bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	prev, exists := ct.owners[output]
	ct.owners[output] = unit
	if !exists || prev == unit {
		return "", false
	}
	return prev, true
}
