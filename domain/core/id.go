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
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
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

// Domain-specific ID types. Dataset and model IDs are opaque handles minted
// by the backend; the session ID is minted locally per browser session.
type (
	DatasetID ID
	ModelID   ID
	SessionID ID
)

func (id DatasetID) String() string { return ID(id).String() }
func (id ModelID) String() string   { return ID(id).String() }
func (id SessionID) String() string { return ID(id).String() }

func (id DatasetID) IsEmpty() bool { return ID(id).IsEmpty() }
func (id ModelID) IsEmpty() bool   { return ID(id).IsEmpty() }
func (id SessionID) IsEmpty() bool { return ID(id).IsEmpty() }

// NewSessionID mints a fresh session identifier.
func NewSessionID() SessionID {
	return SessionID(NewID())
}

// ParseDatasetID parses a string into DatasetID
func ParseDatasetID(s string) (DatasetID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dataset ID cannot be empty")
	}
	return DatasetID(s), nil
}

// ParseModelID parses a string into ModelID
func ParseModelID(s string) (ModelID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("model ID cannot be empty")
	}
	return ModelID(s), nil
}

// ParseSessionID parses a string into SessionID
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	return SessionID(s), nil
}
