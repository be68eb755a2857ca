// Package types provides the shared data model of the content toolkit: funnel
// stages, framework steps, content items and the user profile.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StageKey identifies one of the five fixed funnel stages.
// The zero value means "unassigned" and is encoded as JSON null.
type StageKey string

// Funnel stage keys, in customer-journey order.
const (
	StageDiscover  StageKey = "discover"
	StageResonate  StageKey = "resonate"
	StageEnvision  StageKey = "envision"
	StageTrust     StageKey = "trust"
	StageAuthority StageKey = "authority"

	// Unassigned is the stage of an item that belongs to no stage.
	Unassigned StageKey = ""
)

// Stage is the static reference data for a funnel stage.
type Stage struct {
	Key         StageKey `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// Stages lists every funnel stage in display order.
var Stages = []Stage{
	{
		Key:         StageDiscover,
		Title:       "Discover",
		Description: "Content that gets you found by the people you serve.",
	},
	{
		Key:         StageResonate,
		Title:       "Resonate",
		Description: "Content that shows you understand their problem.",
	},
	{
		Key:         StageEnvision,
		Title:       "Envision",
		Description: "Content that helps them picture life after the solution.",
	},
	{
		Key:         StageTrust,
		Title:       "Trust",
		Description: "Proof that you deliver: results, reviews and case studies.",
	},
	{
		Key:         StageAuthority,
		Title:       "Authority",
		Description: "Content that positions you as the go-to expert.",
	},
}

// StageKeys returns the stage keys in display order.
func StageKeys() []StageKey {
	keys := make([]StageKey, len(Stages))
	for i, s := range Stages {
		keys[i] = s.Key
	}
	return keys
}

// LookupStage returns the reference data for key.
func LookupStage(key StageKey) (Stage, bool) {
	for _, s := range Stages {
		if s.Key == key {
			return s, true
		}
	}
	return Stage{}, false
}

// ParseStage converts raw input into a StageKey, rejecting anything that is
// not one of the five fixed stages.
func ParseStage(raw string) (StageKey, error) {
	key := StageKey(raw)
	if !key.Valid() {
		return Unassigned, fmt.Errorf("unknown stage %q", raw)
	}
	return key, nil
}

// Valid reports whether k is one of the five fixed stages.
func (k StageKey) Valid() bool {
	_, ok := LookupStage(k)
	return ok
}

// IsAssigned reports whether k names a stage rather than "unassigned".
func (k StageKey) IsAssigned() bool {
	return k != Unassigned
}

func (k StageKey) String() string {
	if k == Unassigned {
		return "unassigned"
	}
	return string(k)
}

// MarshalJSON encodes the unassigned stage as null.
func (k StageKey) MarshalJSON() ([]byte, error) {
	if k == Unassigned {
		return []byte("null"), nil
	}
	return json.Marshal(string(k))
}

// UnmarshalJSON decodes null (or an empty string) as the unassigned stage.
// Unknown stage names are kept verbatim so that loaders can decide what to do.
func (k *StageKey) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*k = Unassigned
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("stage must be a string or null: %w", err)
	}
	*k = StageKey(s)
	return nil
}
