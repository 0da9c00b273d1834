package entity

import "github.com/google/uuid"

// Category is a shared reference label tasks can point at. Categories are
// provisioned once from a fixed list and are not user-mutable; no ownership
// is implied by a task referencing one.
type Category struct {
	ID   uuid.UUID
	Name string // Globally unique.
}

// DefaultCategoryNames is the fixed reference list inserted at provisioning
// time. Seeding is idempotent: only names not already present are inserted.
var DefaultCategoryNames = []string{
	"Academic",
	"Research",
	"Assignments",
	"Exams",
	"Meetings",
	"Projects",
	"Events",
	"Personal",
	"Health & Fitness",
	"Social",
	"Volunteering",
	"Finance",
	"Later",
}
