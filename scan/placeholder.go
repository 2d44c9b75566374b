package scan

// placeholder is the tombstone marker written in place of a removed
// element when a sequence is hazarded but not yet compacted.
type placeholder struct{}

// Tombstone is the canonical placeholder value. Position-aware consumers
// must never observe it; a compaction pass removes every occurrence.
var Tombstone any = placeholder{}

// IsTombstone reports whether v is the placeholder marker.
func IsTombstone(v any) bool {
	_, ok := v.(placeholder)
	return ok
}
