package cadet

import (
	"context"

	"go-recruit/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CadetRepository interface {
	Create(ctx context.Context, cadet *Cadet) error
	FindByID(ctx context.Context, id string) (*Cadet, error)
	List(ctx context.Context, filter ListFilter, page, limit int64) ([]Cadet, int64, error)
	// ListAll streams the full roster for warehouse export.
	ListAll(ctx context.Context) ([]Cadet, error)
	CountBySubmission(ctx context.Context, submissionID primitive.ObjectID) (int64, error)
}

type CadetRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCadetRepository(mongodb *database.MongodbDB) CadetRepository {
	return &CadetRepositoryImpl{
		collection: mongodb.DB.Collection("cadets"),
	}
}

func (r *CadetRepositoryImpl) Create(ctx context.Context, cadet *Cadet) error {
	if cadet.ID.IsZero() {
		cadet.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, cadet)
	return err
}

func (r *CadetRepositoryImpl) FindByID(ctx context.Context, id string) (*Cadet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var cadet Cadet
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&cadet)
	if err != nil {
		return nil, err
	}
	return &cadet, nil
}

func (r *CadetRepositoryImpl) List(ctx context.Context, filter ListFilter, page, limit int64) ([]Cadet, int64, error) {
	query := bson.M{}
	if filter.InstituteID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.InstituteID)
		if err != nil {
			return nil, 0, err
		}
		query["institute_id"] = oid
	}
	if filter.Batch != "" {
		query["batch"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Batch, Options: "i"}}
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": re}},
			bson.M{"email": bson.M{"$regex": re}},
			bson.M{"indos_number": bson.M{"$regex": re}},
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

	var cadets []Cadet
	if err := cursor.All(ctx, &cadets); err != nil {
		return nil, 0, err
	}
	return cadets, total, nil
}

func (r *CadetRepositoryImpl) ListAll(ctx context.Context) ([]Cadet, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cadets []Cadet
	if err := cursor.All(ctx, &cadets); err != nil {
		return nil, err
	}
	return cadets, nil
}

func (r *CadetRepositoryImpl) CountBySubmission(ctx context.Context, submissionID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"submission_id": submissionID})
}
