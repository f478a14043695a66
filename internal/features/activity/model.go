package activity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityLog records one admin action. Writing it is always best-effort.
type ActivityLog struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	Action      string             `json:"action" bson:"action"`
	Description string             `json:"description" bson:"description"`
	IpAddress   string             `json:"ip_address" bson:"ip_address"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
