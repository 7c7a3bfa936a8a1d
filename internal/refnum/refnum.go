// Package refnum generates human readable order and booking references.
package refnum

import (
	"fmt"
	"time"
)

const (
	OrderPrefix   = "ORD-"
	BookingPrefix = "BKG-"
)

// Generator derives references from the wall clock. References are display
// labels and may collide under bursts within the same microsecond window.
type Generator struct {
	Now func() time.Time
}

// New returns a Generator using time.Now.
func New() *Generator {
	return &Generator{Now: time.Now}
}

// Generate returns prefix + YYYYMMDD + "-" + the last six digits of the
// current microsecond timestamp, e.g. ORD-20240131-482913.
func (g *Generator) Generate(prefix string) string {
	now := g.Now()
	return fmt.Sprintf("%s%s-%06d", prefix, now.Format("20060102"), now.UnixMicro()%1_000_000)
}
