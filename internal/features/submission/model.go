package submission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission lifecycle. A submission is created pending and moves to
// imported exactly once; there is no way back.
const (
	StatusPending  = "pending"
	StatusImported = "imported"
)

// Submission is one uploaded spreadsheet awaiting (or past) import. The
// workbook bytes live in a separate files collection so listings stay cheap.
type Submission struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	InstituteID  primitive.ObjectID `json:"institute_id" bson:"institute_id"`
	Filename     string             `json:"filename" bson:"filename"`
	OriginalName string             `json:"original_name" bson:"original_name"`
	Size         int64              `json:"size" bson:"size"`
	Status       string             `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	ImportedAt   *time.Time         `json:"imported_at,omitempty" bson:"imported_at,omitempty"`
}

// SubmissionFile holds the raw workbook keyed by submission.
type SubmissionFile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	SubmissionID primitive.ObjectID `bson:"submission_id"`
	Data         []byte             `bson:"data"`
}

// ImportSummary reports one import run. Blank rows are skipped without
// being counted, so Total is always Success+Failed.
type ImportSummary struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}
