package domain

import "time"

// Master represents a service professional that users book slots with
type Master struct {
	ID          int64
	Name        string
	Description *string
	Photo       *string // file reference in the bot gateway, not stored here

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MasterUpdate describes a partial update of a master profile.
// Nil fields are left unchanged.
type MasterUpdate struct {
	Name        *string
	Description *string
	Photo       *string
}

// IsEmpty returns true if the update changes nothing
func (u *MasterUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Photo == nil
}
