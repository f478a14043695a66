package institute

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Institute is a maritime training institute that submits cadet rosters.
type Institute struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	InstituteName string             `json:"institute_name" bson:"institute_name"`
	Email         string             `json:"email" bson:"email"`
	ContactPerson string             `json:"contact_person,omitempty" bson:"contact_person,omitempty"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	City          string             `json:"city,omitempty" bson:"city,omitempty"`
	State         string             `json:"state,omitempty" bson:"state,omitempty"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
