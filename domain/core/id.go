package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	PlayerID ID
	RunID    ID
	BatchID  ID
)

// Season identifies a league year, e.g. "2023-24"
type Season string

// String conversions for domain IDs
func (id PlayerID) String() string { return ID(id).String() }
func (id RunID) String() string    { return ID(id).String() }
func (id BatchID) String() string  { return ID(id).String() }
func (s Season) String() string    { return string(s) }

// ParsePlayerID parses a string into PlayerID
func ParsePlayerID(s string) (PlayerID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("player ID cannot be empty")
	}
	return PlayerID(s), nil
}

// ParseSeason parses a string into Season
func ParseSeason(s string) (Season, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("season cannot be empty")
	}
	return Season(trimmed), nil
}
