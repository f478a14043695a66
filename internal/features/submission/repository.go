package submission

import (
	"context"
	"time"

	"go-recruit/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *Submission, data []byte) error
	FindByID(ctx context.Context, id string) (*Submission, error)
	FindFile(ctx context.Context, submissionID primitive.ObjectID) ([]byte, error)
	List(ctx context.Context, status string, instituteID string, page, limit int64) ([]Submission, int64, error)
	// MarkImported claims a pending submission. It returns true only for
	// the single caller whose conditional update flips the status; every
	// concurrent caller sees false.
	MarkImported(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type SubmissionRepositoryImpl struct {
	collection *mongo.Collection
	files      *mongo.Collection
}

func NewSubmissionRepository(mongodb *database.MongodbDB) SubmissionRepository {
	return &SubmissionRepositoryImpl{
		collection: mongodb.DB.Collection("submissions"),
		files:      mongodb.DB.Collection("submission_files"),
	}
}

func (r *SubmissionRepositoryImpl) Create(ctx context.Context, sub *Submission, data []byte) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, sub); err != nil {
		return err
	}
	_, err := r.files.InsertOne(ctx, SubmissionFile{
		ID:           primitive.NewObjectID(),
		SubmissionID: sub.ID,
		Data:         data,
	})
	return err
}

func (r *SubmissionRepositoryImpl) FindByID(ctx context.Context, id string) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var sub Submission
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepositoryImpl) FindFile(ctx context.Context, submissionID primitive.ObjectID) ([]byte, error) {
	var file SubmissionFile
	err := r.files.FindOne(ctx, bson.M{"submission_id": submissionID}).Decode(&file)
	if err != nil {
		return nil, err
	}
	return file.Data, nil
}

func (r *SubmissionRepositoryImpl) List(ctx context.Context, status string, instituteID string, page, limit int64) ([]Submission, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	if instituteID != "" {
		oid, err := primitive.ObjectIDFromHex(instituteID)
		if err != nil {
			return nil, 0, err
		}
		query["institute_id"] = oid
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

	var subs []Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *SubmissionRepositoryImpl) MarkImported(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": StatusPending},
		bson.M{"$set": bson.M{"status": StatusImported, "imported_at": time.Now()}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
