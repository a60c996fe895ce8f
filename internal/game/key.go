package game

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// SyncKey derives a note identity from its kind and hit time. Two
// playthroughs of the same chart are in sync when their queue heads
// produce equal keys, regardless of per-copy mutable state.
func SyncKey(n *Note) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%.3f", n.Kind, n.Ms)))
	return base64.StdEncoding.EncodeToString(sum[:])
}
