package uid

import "github.com/google/uuid"

// New generates a new random request identifier.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether id is a UUID in canonical 36-character form.
// Braced and urn-prefixed forms are rejected so echoed headers stay uniform.
func IsValid(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
