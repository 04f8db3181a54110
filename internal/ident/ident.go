// Package ident generates the opaque string identifiers assigned to
// drivers, vehicles, and activities.
//
// Identifiers are a short entity prefix plus hex-encoded UUIDv4 bytes, e.g.
// "drv-9f86d081c3a4". They are collision resistant without consulting the
// store, so generation never depends on collection contents.
package ident

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// suffixBytes of UUIDv4 randomness per id; 12 hex chars keeps ids short
// enough to read in logs while leaving collisions vanishingly unlikely for
// a single-operator dataset.
const suffixBytes = 6

// New returns a fresh identifier beginning with prefix + "-".
func New(prefix string) string {
	u := uuid.New()
	return prefix + "-" + hex.EncodeToString(u[:suffixBytes])
}
