package uuidutil

import "github.com/google/uuid"

func New() string {
	return uuid.New().String()
}

// Short returns the first block of a uuid, enough to tell runs apart in a report.
func Short(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
