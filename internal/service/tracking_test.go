package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackingGenerator_Format(t *testing.T) {
	clock := fixedClock{t: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)}
	gen := NewTrackingGenerator(clock)

	tracking, err := gen.Generate()
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^CMP-20250314-[0-9A-F]{6}$`), tracking)
}

func TestTrackingGenerator_Randomness(t *testing.T) {
	gen := NewTrackingGenerator(fixedClock{t: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tracking, err := gen.Generate()
		assert.NoError(t, err)
		seen[tracking] = true
	}
	// 100 draws from a 24-bit space collide with negligible probability.
	assert.Greater(t, len(seen), 95)
}
