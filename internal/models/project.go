package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus is the moderation state of a submitted project
type ProjectStatus string

const (
	ProjectStatusPending  ProjectStatus = "pending"
	ProjectStatusApproved ProjectStatus = "approved"
	ProjectStatusRejected ProjectStatus = "rejected"
)

// Project represents a showcase submission stored in MongoDB.
// Teammates and Mentor hold display names, not user ids.
type Project struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Teammates []string           `json:"teammates" bson:"teammates"`
	Mentor    string             `json:"mentor,omitempty" bson:"mentor,omitempty"`
	Status    ProjectStatus      `json:"status" bson:"status"`
	SDGs      []int              `json:"sdgs,omitempty" bson:"sdgs,omitempty"`
	TechStack []string           `json:"tech_stack,omitempty" bson:"tech_stack,omitempty"`
	Likes     int                `json:"likes" bson:"likes"`
	Rating    float64            `json:"rating" bson:"rating"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Members returns teammates followed by the mentor, trimmed and without duplicates.
func (p *Project) Members() []string {
	seen := make(map[string]bool, len(p.Teammates)+1)
	members := make([]string, 0, len(p.Teammates)+1)
	for _, name := range append(append([]string{}, p.Teammates...), p.Mentor) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		members = append(members, name)
	}
	return members
}

// UpdateProjectStatusRequest defines the request body for moderating a project
type UpdateProjectStatusRequest struct {
	Status ProjectStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	Note   string        `json:"note,omitempty" validate:"max=500"`
}
