package permission

import (
	"context"
	"time"

	"go-recruit/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	FindByID(ctx context.Context, id string) (*Permission, error)
	FindByModuleAction(ctx context.Context, module, action string) (*Permission, error)
	// List returns the whole catalog ordered by module, then action.
	List(ctx context.Context) ([]Permission, error)
	EnsureIndexes(ctx context.Context) error
}

type GrantRepository interface {
	// Upsert writes the grant decision for one (role, permission) pair.
	// Repeating the same call leaves the stored state unchanged.
	Upsert(ctx context.Context, roleID, permissionID primitive.ObjectID, granted bool) error
	Find(ctx context.Context, roleID, permissionID primitive.ObjectID) (*Grant, error)
	FindByRoleID(ctx context.Context, roleID primitive.ObjectID) ([]Grant, error)
	EnsureIndexes(ctx context.Context) error
}

type PermissionRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPermissionRepository(mongodb *database.MongodbDB) PermissionRepository {
	return &PermissionRepositoryImpl{
		collection: mongodb.DB.Collection("permissions"),
	}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, permission *Permission) error {
	_, err := r.collection.InsertOne(ctx, permission)
	return err
}

func (r *PermissionRepositoryImpl) FindByID(ctx context.Context, id string) (*Permission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var permission Permission
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&permission)
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *PermissionRepositoryImpl) FindByModuleAction(ctx context.Context, module, action string) (*Permission, error) {
	var permission Permission
	err := r.collection.FindOne(ctx, bson.M{"module": module, "action": action}).Decode(&permission)
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]Permission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "module", Value: 1}, {Key: "action", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var permissions []Permission
	if err := cursor.All(ctx, &permissions); err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *PermissionRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "module", Value: 1}, {Key: "action", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type GrantRepositoryImpl struct {
	collection *mongo.Collection
}

func NewGrantRepository(mongodb *database.MongodbDB) GrantRepository {
	return &GrantRepositoryImpl{
		collection: mongodb.DB.Collection("grants"),
	}
}

func (r *GrantRepositoryImpl) Upsert(ctx context.Context, roleID, permissionID primitive.ObjectID, granted bool) error {
	now := time.Now()
	filter := bson.M{"role_id": roleID, "permission_id": permissionID}
	update := bson.M{
		"$set":         bson.M{"granted": granted, "updated_at": now},
		"$setOnInsert": bson.M{"role_id": roleID, "permission_id": permissionID, "created_at": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *GrantRepositoryImpl) Find(ctx context.Context, roleID, permissionID primitive.ObjectID) (*Grant, error) {
	var grant Grant
	err := r.collection.FindOne(ctx, bson.M{
		"role_id":       roleID,
		"permission_id": permissionID,
	}).Decode(&grant)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *GrantRepositoryImpl) FindByRoleID(ctx context.Context, roleID primitive.ObjectID) ([]Grant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"role_id": roleID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grants []Grant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

// EnsureIndexes enforces the composite unique key so a (role, permission)
// pair is never duplicated.
func (r *GrantRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "role_id", Value: 1}, {Key: "permission_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
