package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// InputHash computes the canonical content hash of a planning input.
// The meta timestamp is excluded: rebuilding an unchanged period must yield
// the same hash, otherwise "is this run still current" checks would always
// report stale.
func InputHash(input *PlanningInput) (string, error) {
	canonical := *input
	canonical.Meta.GeneratedAt = ""

	raw, err := json.Marshal(&canonical)
	if err != nil {
		return "", fmt.Errorf("canonicalize planning input: %w", err)
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
