package institute

import (
	"context"
	"time"

	"go-recruit/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InstituteRepository interface {
	Create(ctx context.Context, inst *Institute) error
	FindByID(ctx context.Context, id string) (*Institute, error)
	FindByEmail(ctx context.Context, email string) (*Institute, error)
	List(ctx context.Context, search string, page, limit int64) ([]Institute, int64, error)
	Update(ctx context.Context, id string, update bson.M) (*Institute, error)
	Delete(ctx context.Context, id string) error
}

type InstituteRepositoryImpl struct {
	collection *mongo.Collection
}

func NewInstituteRepository(mongodb *database.MongodbDB) InstituteRepository {
	return &InstituteRepositoryImpl{
		collection: mongodb.DB.Collection("institutes"),
	}
}

func (r *InstituteRepositoryImpl) Create(ctx context.Context, inst *Institute) error {
	if inst.ID.IsZero() {
		inst.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, inst)
	return err
}

func (r *InstituteRepositoryImpl) FindByID(ctx context.Context, id string) (*Institute, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var inst Institute
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&inst)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *InstituteRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Institute, error) {
	var inst Institute
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&inst)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *InstituteRepositoryImpl) List(ctx context.Context, search string, page, limit int64) ([]Institute, int64, error) {
	query := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"institute_name": bson.M{"$regex": re}},
			bson.M{"email": bson.M{"$regex": re}},
			bson.M{"city": bson.M{"$regex": re}},
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, query,
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip((page-1)*limit).
			SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var institutes []Institute
	if err := cursor.All(ctx, &institutes); err != nil {
		return nil, 0, err
	}
	return institutes, total, nil
}

func (r *InstituteRepositoryImpl) Update(ctx context.Context, id string, update bson.M) (*Institute, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	update["updated_at"] = time.Now()

	var inst Institute
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&inst)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *InstituteRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
