package model

import "time"

// Teacher leads sessions. Teachers are reference data: the core only reads
// them and never owns their lifecycle.
type Teacher struct {
	ID        string    `json:"id"        db:"id"`
	LastName  string    `json:"lastName"  db:"last_name"`
	FirstName string    `json:"firstName" db:"first_name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Equal reports value equality over all persisted fields.
func (t *Teacher) Equal(other *Teacher) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID &&
		t.LastName == other.LastName &&
		t.FirstName == other.FirstName &&
		t.CreatedAt.Equal(other.CreatedAt) &&
		t.UpdatedAt.Equal(other.UpdatedAt)
}
