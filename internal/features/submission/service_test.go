package submission

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-recruit/internal/apperr"
	"go-recruit/internal/config"
	"go-recruit/internal/email"
	"go-recruit/internal/features/cadet"
	"go-recruit/internal/features/institute"
	"go-recruit/internal/features/screening"
	"go-recruit/pkg/utils"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeSubmissionRepo struct {
	subs  map[primitive.ObjectID]*Submission
	files map[primitive.ObjectID][]byte

	claimOverride func(id primitive.ObjectID) (bool, error)
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		subs:  make(map[primitive.ObjectID]*Submission),
		files: make(map[primitive.ObjectID][]byte),
	}
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, sub *Submission, data []byte) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	f.subs[sub.ID] = sub
	f.files[sub.ID] = data
	return nil
}

func (f *fakeSubmissionRepo) FindByID(ctx context.Context, id string) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	if sub, ok := f.subs[oid]; ok {
		copied := *sub
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSubmissionRepo) FindFile(ctx context.Context, submissionID primitive.ObjectID) ([]byte, error) {
	if data, ok := f.files[submissionID]; ok {
		return data, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSubmissionRepo) List(ctx context.Context, status, instituteID string, page, limit int64) ([]Submission, int64, error) {
	var out []Submission
	for _, sub := range f.subs {
		if status != "" && sub.Status != status {
			continue
		}
		out = append(out, *sub)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSubmissionRepo) MarkImported(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if f.claimOverride != nil {
		return f.claimOverride(id)
	}
	sub, ok := f.subs[id]
	if !ok || sub.Status != StatusPending {
		return false, nil
	}
	now := time.Now()
	sub.Status = StatusImported
	sub.ImportedAt = &now
	return true, nil
}

type fakeInstituteRepo struct {
	institutes map[primitive.ObjectID]*institute.Institute
}

func newFakeInstituteRepo(institutes ...*institute.Institute) *fakeInstituteRepo {
	f := &fakeInstituteRepo{institutes: make(map[primitive.ObjectID]*institute.Institute)}
	for _, inst := range institutes {
		f.institutes[inst.ID] = inst
	}
	return f
}

func (f *fakeInstituteRepo) Create(ctx context.Context, inst *institute.Institute) error {
	f.institutes[inst.ID] = inst
	return nil
}

func (f *fakeInstituteRepo) FindByID(ctx context.Context, id string) (*institute.Institute, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	if inst, ok := f.institutes[oid]; ok {
		return inst, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeInstituteRepo) FindByEmail(ctx context.Context, email string) (*institute.Institute, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeInstituteRepo) List(ctx context.Context, search string, page, limit int64) ([]institute.Institute, int64, error) {
	return nil, 0, nil
}

func (f *fakeInstituteRepo) Update(ctx context.Context, id string, update bson.M) (*institute.Institute, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeInstituteRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeCadetRepo struct {
	created []*cadet.Cadet
	err     error
}

func (f *fakeCadetRepo) Create(ctx context.Context, c *cadet.Cadet) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCadetRepo) FindByID(ctx context.Context, id string) (*cadet.Cadet, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCadetRepo) List(ctx context.Context, filter cadet.ListFilter, page, limit int64) ([]cadet.Cadet, int64, error) {
	return nil, 0, nil
}

func (f *fakeCadetRepo) ListAll(ctx context.Context) ([]cadet.Cadet, error) { return nil, nil }

func (f *fakeCadetRepo) CountBySubmission(ctx context.Context, submissionID primitive.ObjectID) (int64, error) {
	return int64(len(f.created)), nil
}

type stubScreening struct {
	screening.ScreeningService
	eligible  bool
	evaluated bool
}

func (s *stubScreening) Evaluate(ctx context.Context, rec *cadet.Cadet) (bool, bool, error) {
	return s.eligible, s.evaluated, nil
}

type fakeSender struct {
	sent []*email.Email
	err  error
}

func (f *fakeSender) Send(msg *email.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		FrontendURL: "https://recruit.example.com",
		EmailFrom:   "noreply@example.com",
	}
}

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func newImportFixture(t *testing.T, workbook []byte) (*SubmissionServiceImpl, *fakeSubmissionRepo, *fakeCadetRepo, *Submission) {
	t.Helper()

	inst := &institute.Institute{
		ID:            primitive.NewObjectID(),
		InstituteName: "Coastal Maritime Academy",
		Email:         "office@coastal.example.com",
	}
	subRepo := newFakeSubmissionRepo()
	cadetRepo := &fakeCadetRepo{}

	sub := &Submission{
		ID:          primitive.NewObjectID(),
		InstituteID: inst.ID,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	subRepo.subs[sub.ID] = sub
	subRepo.files[sub.ID] = workbook

	svc := &SubmissionServiceImpl{
		Repo:          subRepo,
		InstituteRepo: newFakeInstituteRepo(inst),
		CadetRepo:     cadetRepo,
		Screening:     &stubScreening{eligible: true, evaluated: true},
		Sender:        &fakeSender{},
		Config:        testConfig(),
		Logger:        zap.NewNop(),
	}
	return svc, subRepo, cadetRepo, sub
}

func TestImportMixedRows(t *testing.T) {
	workbook := buildWorkbook(t, [][]interface{}{
		{"Cadet Roster"},
		{"Name", "Email ID", "Contact Number", "Batch"},
		{"Jane Doe", "jane@example.com", "9876543210", "Batch 3"},
		{"", "", "", ""},
		{"", "noname@example.com", "1234567890", "Batch 3"},
		{"Raj Kumar", "raj@example.com", "", ""},
		{"Priya Nair", "priya@example.com", "5554443332", "Batch 4"},
	})

	svc, subRepo, cadetRepo, sub := newImportFixture(t, workbook)

	summary, err := svc.Import(context.Background(), sub.ID.Hex())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if summary.Success != 3 {
		t.Errorf("Success = %d, want 3", summary.Success)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if summary.Total != 4 {
		t.Errorf("Total = %d, want 4 (blank rows are not counted)", summary.Total)
	}

	if got := subRepo.subs[sub.ID].Status; got != StatusImported {
		t.Errorf("submission status = %q, want imported", got)
	}

	if len(cadetRepo.created) != 3 {
		t.Fatalf("created %d cadets, want 3", len(cadetRepo.created))
	}
	for _, c := range cadetRepo.created {
		if c.InstituteID != sub.InstituteID {
			t.Errorf("cadet institute = %s, want %s", c.InstituteID.Hex(), sub.InstituteID.Hex())
		}
		if c.SubmissionID != sub.ID {
			t.Errorf("cadet submission = %s, want %s", c.SubmissionID.Hex(), sub.ID.Hex())
		}
		if c.Status != cadet.StatusActive {
			t.Errorf("cadet status = %q, want active", c.Status)
		}
		if c.Eligibility != cadet.EligibilityPassed {
			t.Errorf("cadet eligibility = %q, want passed", c.Eligibility)
		}
	}

	// Missing batch falls back to the default.
	if cadetRepo.created[1].Name != "Raj Kumar" || cadetRepo.created[1].Batch != "Batch 1" {
		t.Errorf("cadet %q batch = %q, want default Batch 1", cadetRepo.created[1].Name, cadetRepo.created[1].Batch)
	}
}

func TestImportAlreadyImported(t *testing.T) {
	workbook := buildWorkbook(t, [][]interface{}{
		{"Name", "Email", "Phone"},
		{"Jane Doe", "jane@example.com", "9876543210"},
	})
	svc, _, cadetRepo, sub := newImportFixture(t, workbook)
	ctx := context.Background()

	if _, err := svc.Import(ctx, sub.ID.Hex()); err != nil {
		t.Fatalf("first import: %v", err)
	}
	firstCount := len(cadetRepo.created)

	_, err := svc.Import(ctx, sub.ID.Hex())
	if !apperr.IsKind(err, apperr.KindAlreadyImported) {
		t.Fatalf("expected already-imported, got %v", err)
	}
	if len(cadetRepo.created) != firstCount {
		t.Errorf("re-import created %d extra cadets", len(cadetRepo.created)-firstCount)
	}
}

func TestImportLosingClaimProducesNoCadets(t *testing.T) {
	workbook := buildWorkbook(t, [][]interface{}{
		{"Name", "Email", "Phone"},
		{"Jane Doe", "jane@example.com", "9876543210"},
	})
	svc, subRepo, cadetRepo, sub := newImportFixture(t, workbook)

	// Another importer wins the conditional update between our status read
	// and our claim.
	subRepo.claimOverride = func(id primitive.ObjectID) (bool, error) { return false, nil }

	_, err := svc.Import(context.Background(), sub.ID.Hex())
	if !apperr.IsKind(err, apperr.KindAlreadyImported) {
		t.Fatalf("expected already-imported for the losing claimant, got %v", err)
	}
	if len(cadetRepo.created) != 0 {
		t.Errorf("losing claimant created %d cadets, want 0", len(cadetRepo.created))
	}
}

func TestImportHeaderNotFoundLeavesPending(t *testing.T) {
	workbook := buildWorkbook(t, [][]interface{}{
		{"Quarterly Report"},
		{"Totals", "104"},
	})
	svc, subRepo, _, sub := newImportFixture(t, workbook)

	_, err := svc.Import(context.Background(), sub.ID.Hex())
	if !apperr.IsKind(err, apperr.KindHeaderNotFound) {
		t.Fatalf("expected header-not-found, got %v", err)
	}
	if got := subRepo.subs[sub.ID].Status; got != StatusPending {
		t.Errorf("submission status = %q, want still pending for retry", got)
	}
}

func TestImportUnknownSubmission(t *testing.T) {
	svc, _, _, _ := newImportFixture(t, nil)

	_, err := svc.Import(context.Background(), primitive.NewObjectID().Hex())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSendRequest(t *testing.T) {
	utils.SetSecret("test-secret")

	inst := &institute.Institute{
		ID:            primitive.NewObjectID(),
		InstituteName: "Coastal Maritime Academy",
		Email:         "office@coastal.example.com",
	}
	sender := &fakeSender{}
	svc := &SubmissionServiceImpl{
		Repo:          newFakeSubmissionRepo(),
		InstituteRepo: newFakeInstituteRepo(inst),
		CadetRepo:     &fakeCadetRepo{},
		Sender:        sender,
		Config:        testConfig(),
		Logger:        zap.NewNop(),
	}

	unknown := primitive.NewObjectID().Hex()
	results := svc.SendRequest(context.Background(), []string{inst.ID.Hex(), unknown}, "Please submit by Friday", nil)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Sent || results[0].Error != "" {
		t.Errorf("expected first result sent, got %+v", results[0])
	}
	if results[1].Sent || results[1].Error == "" {
		t.Errorf("expected second result to fail, got %+v", results[1])
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To[0] != inst.Email {
		t.Errorf("email to = %q", msg.To[0])
	}
	if !strings.Contains(msg.HtmlBody, "/institute/submit-excel?token=") {
		t.Error("email body missing the submission link")
	}
}

func TestUploadRejectsBadToken(t *testing.T) {
	utils.SetSecret("test-secret")

	svc, _, _, _ := newImportFixture(t, nil)
	_, err := svc.Upload(context.Background(), "garbage-token", "roster.xlsx", []byte{1})
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestUploadAndVerifyRoundTrip(t *testing.T) {
	utils.SetSecret("test-secret")

	inst := &institute.Institute{
		ID:            primitive.NewObjectID(),
		InstituteName: "Coastal Maritime Academy",
		Email:         "office@coastal.example.com",
	}
	subRepo := newFakeSubmissionRepo()
	svc := &SubmissionServiceImpl{
		Repo:          subRepo,
		InstituteRepo: newFakeInstituteRepo(inst),
		CadetRepo:     &fakeCadetRepo{},
		Sender:        &fakeSender{},
		Config:        testConfig(),
		Logger:        zap.NewNop(),
	}
	ctx := context.Background()

	token, err := utils.GenerateSubmissionToken(inst.ID.Hex(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateSubmissionToken: %v", err)
	}

	verified, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if verified.InstituteID != inst.ID.Hex() {
		t.Errorf("verified institute = %s, want %s", verified.InstituteID, inst.ID.Hex())
	}

	sub, err := svc.Upload(ctx, token, "roster.xlsx", []byte{0x50, 0x4b})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if sub.Status != StatusPending {
		t.Errorf("uploaded status = %q, want pending", sub.Status)
	}
	if sub.InstituteID != inst.ID {
		t.Errorf("uploaded institute = %s", sub.InstituteID.Hex())
	}
	if sub.OriginalName != "roster.xlsx" {
		t.Errorf("original name = %q", sub.OriginalName)
	}
	if _, ok := subRepo.files[sub.ID]; !ok {
		t.Error("workbook bytes were not stored")
	}

	if _, err := svc.Upload(ctx, token, "roster.csv", []byte{1}); err == nil {
		t.Error("expected rejection of non-xlsx upload")
	}
}
