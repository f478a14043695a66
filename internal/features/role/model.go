package role

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a named set of grants. System roles are provisioned by the seeder
// and cannot be deleted or renamed by operators.
type Role struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	DisplayName string             `json:"display_name" bson:"display_name"`
	Description string             `json:"description" bson:"description"`
	IsSystem    bool               `json:"is_system" bson:"is_system"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
