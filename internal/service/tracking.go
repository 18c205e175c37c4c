package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// TrackingGenerator produces public tracking numbers of the form
// CMP-YYYYMMDD-XXXXXX. The suffix is random; collisions are handled by the
// caller retrying against the unique constraint.
type TrackingGenerator struct {
	clock Clock
}

func NewTrackingGenerator(clock Clock) *TrackingGenerator {
	return &TrackingGenerator{clock: clock}
}

func (g *TrackingGenerator) Generate() (string, error) {
	var buf [3]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("tracking generator: %w", err)
	}
	date := g.clock.Now().Format("20060102")
	return fmt.Sprintf("CMP-%s-%s", date, strings.ToUpper(hex.EncodeToString(buf[:]))), nil
}
