package cadet

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Overall status values
const (
	StatusActive    = "active"
	StatusSelected  = "selected"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// Eligibility screening outcomes (empty when no rules are configured)
const (
	EligibilityPassed  = "passed"
	EligibilityFlagged = "flagged"
)

// Cadet is one candidate record. Created by the import pipeline (one per
// successfully mapped spreadsheet row) or via the direct-creation API; the
// import pipeline never updates it afterwards. Spreadsheet-sourced values are
// kept verbatim as strings.
type Cadet struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	InstituteID  primitive.ObjectID `json:"institute_id" bson:"institute_id,omitempty"`
	SubmissionID primitive.ObjectID `json:"submission_id" bson:"submission_id,omitempty"`

	Name   string `json:"name" bson:"name"`
	Email  string `json:"email,omitempty" bson:"email,omitempty"`
	Phone  string `json:"phone,omitempty" bson:"phone,omitempty"`
	Course string `json:"course,omitempty" bson:"course,omitempty"`
	Batch  string `json:"batch,omitempty" bson:"batch,omitempty"`

	Gender         string `json:"gender,omitempty" bson:"gender,omitempty"`
	DOB            string `json:"dob,omitempty" bson:"dob,omitempty"`
	IndosNumber    string `json:"indos_number,omitempty" bson:"indos_number,omitempty"`
	CDCNumber      string `json:"cdc_number,omitempty" bson:"cdc_number,omitempty"`
	PassportNumber string `json:"passport_number,omitempty" bson:"passport_number,omitempty"`

	TenthPercentage   string `json:"tenth_percentage,omitempty" bson:"tenth_percentage,omitempty"`
	TwelfthPercentage string `json:"twelfth_percentage,omitempty" bson:"twelfth_percentage,omitempty"`
	PCMPercentage     string `json:"pcm_percentage,omitempty" bson:"pcm_percentage,omitempty"`
	DegreePercentage  string `json:"degree_percentage,omitempty" bson:"degree_percentage,omitempty"`

	Height     string `json:"height,omitempty" bson:"height,omitempty"`
	Weight     string `json:"weight,omitempty" bson:"weight,omitempty"`
	BloodGroup string `json:"blood_group,omitempty" bson:"blood_group,omitempty"`

	Hometown        string `json:"hometown,omitempty" bson:"hometown,omitempty"`
	PassingOutDate  string `json:"passing_out_date,omitempty" bson:"passing_out_date,omitempty"`
	AgeAtPassingOut string `json:"age_at_passing_out,omitempty" bson:"age_at_passing_out,omitempty"`
	BatchRank       string `json:"batch_rank,omitempty" bson:"batch_rank,omitempty"`
	NoOfArrears     string `json:"no_of_arrears,omitempty" bson:"no_of_arrears,omitempty"`

	TenthBoard   string `json:"tenth_board,omitempty" bson:"tenth_board,omitempty"`
	TenthYear    string `json:"tenth_year,omitempty" bson:"tenth_year,omitempty"`
	TenthMaths   string `json:"tenth_maths,omitempty" bson:"tenth_maths,omitempty"`
	TenthScience string `json:"tenth_science,omitempty" bson:"tenth_science,omitempty"`
	TenthEnglish string `json:"tenth_english,omitempty" bson:"tenth_english,omitempty"`

	TwelfthBoard     string `json:"twelfth_board,omitempty" bson:"twelfth_board,omitempty"`
	TwelfthYear      string `json:"twelfth_year,omitempty" bson:"twelfth_year,omitempty"`
	TwelfthEnglish   string `json:"twelfth_english,omitempty" bson:"twelfth_english,omitempty"`
	TwelfthPhysics   string `json:"twelfth_physics,omitempty" bson:"twelfth_physics,omitempty"`
	TwelfthChemistry string `json:"twelfth_chemistry,omitempty" bson:"twelfth_chemistry,omitempty"`
	TwelfthMaths     string `json:"twelfth_maths,omitempty" bson:"twelfth_maths,omitempty"`

	IMURank          string `json:"imu_rank,omitempty" bson:"imu_rank,omitempty"`
	IMUAvgPercentage string `json:"imu_avg_percentage,omitempty" bson:"imu_avg_percentage,omitempty"`
	IMUSem1          string `json:"imu_sem1,omitempty" bson:"imu_sem1,omitempty"`
	IMUSem2          string `json:"imu_sem2,omitempty" bson:"imu_sem2,omitempty"`
	IMUSem3          string `json:"imu_sem3,omitempty" bson:"imu_sem3,omitempty"`
	IMUSem4          string `json:"imu_sem4,omitempty" bson:"imu_sem4,omitempty"`
	IMUSem5          string `json:"imu_sem5,omitempty" bson:"imu_sem5,omitempty"`
	IMUSem6          string `json:"imu_sem6,omitempty" bson:"imu_sem6,omitempty"`
	IMUSem7          string `json:"imu_sem7,omitempty" bson:"imu_sem7,omitempty"`
	IMUSem8          string `json:"imu_sem8,omitempty" bson:"imu_sem8,omitempty"`

	BMI             string `json:"bmi,omitempty" bson:"bmi,omitempty"`
	ExtraCurricular string `json:"extra_curricular,omitempty" bson:"extra_curricular,omitempty"`

	Status      string    `json:"status" bson:"status"`
	Eligibility string    `json:"eligibility,omitempty" bson:"eligibility,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ListFilter narrows cadet listings.
type ListFilter struct {
	InstituteID string
	Batch       string
	Search      string
}
