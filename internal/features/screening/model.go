package screening

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rule is a tengo script evaluated against each imported cadet. The script
// sees a `cadet` map and must set a boolean `eligible` variable.
type Rule struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Script      string             `json:"script" bson:"script"`
	Enabled     bool               `json:"enabled" bson:"enabled"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
