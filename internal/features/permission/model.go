package permission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission is an immutable catalog entry; (module, action) is unique.
type Permission struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Module      string             `json:"module" bson:"module"`
	Action      string             `json:"action" bson:"action"`
	DisplayName string             `json:"display_name" bson:"display_name"`
	Description string             `json:"description" bson:"description"`
}

// Grant is a stored boolean decision for one (role, permission) pair.
// Absence of a grant document reads as granted=false.
type Grant struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RoleID       primitive.ObjectID `json:"role_id" bson:"role_id"`
	PermissionID primitive.ObjectID `json:"permission_id" bson:"permission_id"`
	Granted      bool               `json:"granted" bson:"granted"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// PermissionState is a catalog entry annotated with one role's grant state.
type PermissionState struct {
	ID          primitive.ObjectID `json:"id"`
	Action      string             `json:"action"`
	DisplayName string             `json:"display_name"`
	Description string             `json:"description"`
	Granted     bool               `json:"granted"`
}

// ModulePermissions groups annotated entries by module.
type ModulePermissions struct {
	Module      string            `json:"module"`
	Permissions []PermissionState `json:"permissions"`
}

// GrantItem is one entry of a bulk grant update.
type GrantItem struct {
	PermissionID string `json:"permission_id"`
	Granted      bool   `json:"granted"`
}
