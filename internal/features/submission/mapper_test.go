package submission

import "testing"

func TestMapRowBasicFields(t *testing.T) {
	labels := []string{"S.No", "Name as in INDOS Cert", "Email ID", "Contact Number", "Gender", "INDoS Number"}
	row := []string{"1", "Jane Doe", "jane@example.com", "9876543210", "F", "20EL0001"}

	rec := MapRow(row, labels)

	if rec.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", rec.Name, "Jane Doe")
	}
	if rec.Email != "jane@example.com" {
		t.Errorf("Email = %q", rec.Email)
	}
	if rec.Phone != "9876543210" {
		t.Errorf("Phone = %q", rec.Phone)
	}
	if rec.Gender != "F" {
		t.Errorf("Gender = %q", rec.Gender)
	}
	if rec.IndosNumber != "20EL0001" {
		t.Errorf("IndosNumber = %q", rec.IndosNumber)
	}
}

func TestMapRowDefaults(t *testing.T) {
	labels := []string{"Name", "Email"}
	row := []string{"Jane Doe", "jane@example.com"}

	rec := MapRow(row, labels)

	if rec.Course != "General" {
		t.Errorf("Course = %q, want default %q", rec.Course, "General")
	}
	if rec.Batch != "Batch 1" {
		t.Errorf("Batch = %q, want default %q", rec.Batch, "Batch 1")
	}
}

func TestMapRowSynonymPrecedence(t *testing.T) {
	// Both a primary and a fallback label are present; the primary wins
	// regardless of column order.
	labels := []string{"Mobile", "Contact Number"}
	row := []string{"1111111111", "2222222222"}

	rec := MapRow(row, labels)
	if rec.Phone != "2222222222" {
		t.Errorf("Phone = %q, want the Contact Number value", rec.Phone)
	}
}

func TestMapRowCaseInsensitiveAndSubstring(t *testing.T) {
	labels := []string{"CANDIDATE NAME", "email address (personal)"}
	row := []string{"Jane Doe", "jane@example.com"}

	rec := MapRow(row, labels)
	if rec.Name != "Jane Doe" {
		t.Errorf("Name = %q, want match via uppercase label", rec.Name)
	}
	if rec.Email != "jane@example.com" {
		t.Errorf("Email = %q, want match via substring label", rec.Email)
	}
}

func TestMapRowMultilineLabels(t *testing.T) {
	labels := []string{"Name as in\r\nINDOS Cert", "Height in\nCMs"}
	row := []string{"Jane Doe", "172"}

	rec := MapRow(row, labels)
	if rec.Name != "Jane Doe" {
		t.Errorf("Name = %q, want multi-line header cleaned", rec.Name)
	}
	if rec.Height != "172" {
		t.Errorf("Height = %q", rec.Height)
	}
}

func TestMapRowDuplicateLabelLastValueWins(t *testing.T) {
	labels := []string{"Name", "Batch", "Batch"}
	row := []string{"Jane Doe", "Batch 2", "Batch 7"}

	rec := MapRow(row, labels)
	if rec.Batch != "Batch 7" {
		t.Errorf("Batch = %q, want the later duplicate's value", rec.Batch)
	}
}

func TestMapRowShortRow(t *testing.T) {
	labels := []string{"Name", "Email", "Phone", "Gender"}
	row := []string{"Jane Doe"}

	rec := MapRow(row, labels)
	if rec.Name != "Jane Doe" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Email != "" || rec.Phone != "" || rec.Gender != "" {
		t.Error("missing cells should map to empty fields")
	}
}

func TestMapRowMatchedEmptyCellStopsSearch(t *testing.T) {
	// The first matching label decides the field even when its cell is
	// empty; later synonyms are not consulted.
	labels := []string{"Name", "Email ID", "Student Email"}
	row := []string{"Jane Doe", "", "backup@example.com"}

	rec := MapRow(row, labels)
	if rec.Email != "" {
		t.Errorf("Email = %q, want empty from the first matched label", rec.Email)
	}
}
