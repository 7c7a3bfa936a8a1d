package refnum

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	fixed := time.Date(2024, 1, 31, 10, 15, 0, 123456789, time.UTC)
	g := &Generator{Now: func() time.Time { return fixed }}

	assert.Equal(t, "ORD-20240131-123456", g.Generate(OrderPrefix))
	assert.Equal(t, "BKG-20240131-123456", g.Generate(BookingPrefix))
}

func TestGenerate_PadsSuffix(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 42_000, time.UTC)
	g := &Generator{Now: func() time.Time { return fixed }}

	assert.Equal(t, "ORD-20240601-000042", g.Generate(OrderPrefix))
}

func TestGenerate_Shape(t *testing.T) {
	ref := New().Generate(BookingPrefix)
	assert.Regexp(t, regexp.MustCompile(`^BKG-\d{8}-\d{6}$`), ref)
}
