package database

import "github.com/google/uuid"

// IsUUID reports whether id can be bound to a UUID column. Ids that cannot are
// never stored, so adapters answer them with an empty result.
func IsUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// UUIDs keeps the entries of ids that IsUUID accepts, in order.
func UUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if IsUUID(id) {
			out = append(out, id)
		}
	}
	return out
}
