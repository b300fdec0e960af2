package services

import "github.com/google/uuid"

// newID returns a time-sortable v7 uuid for new rows
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// validID reports whether a caller-supplied id parses as a uuid.
// Checking before querying keeps malformed ids out of uuid-typed
// columns, where postgres would reject them as a statement error.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
