package base

import "github.com/google/uuid"

// EnsureID assigns a fresh identifier to records created without one.
func EnsureID(id *uuid.UUID) {
	if id != nil && *id == uuid.Nil {
		*id = uuid.New()
	}
}
