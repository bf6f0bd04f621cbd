package models

import "time"

// Roles stored on user documents.
const (
	RoleUser      = "user"
	RoleCounselor = "counselor"
	RoleAdmin     = "admin"
)

// Availability maps a date key ("YYYY-MM-DD") to an ordered list of slot
// labels. Insertion order is display order; duplicates within a date are
// rejected at the boundary.
type Availability map[string][]string

// Counselor is the slice of the user document this service reads and the
// only part it writes (the availability field). Account lifecycle belongs
// to the auth service.
type Counselor struct {
	ID             string       `bson:"id" json:"id"`
	Name           string       `bson:"name" json:"name"`
	Email          string       `bson:"email" json:"email"`
	ProfileImage   string       `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Role           string       `bson:"role" json:"role"`
	Specialization string       `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Experience     int          `bson:"experience,omitempty" json:"experience,omitempty"`
	IsApproved     bool         `bson:"isApproved" json:"isApproved"`
	Availability   Availability `bson:"availability,omitempty" json:"availability,omitempty"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// CounselorFilter narrows the public counselor directory listing.
type CounselorFilter struct {
	Specialization string
	MinExperience  int
}
