package submission

import (
	"testing"

	"go-recruit/internal/apperr"

	"github.com/xuri/excelize/v2"
)

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name      string
		rows      [][]string
		wantIndex int
		wantErr   bool
	}{
		{
			name: "header on first row",
			rows: [][]string{
				{"S.No", "Name", "Email ID", "Contact Number"},
				{"1", "Jane Doe", "jane@example.com", "9876543210"},
			},
			wantIndex: 0,
		},
		{
			name: "header after title rows",
			rows: [][]string{
				{"Maritime Academy"},
				{"Cadet Roster 2026"},
				{},
				{"Sr.No", "Name as in INDOS Cert", "Gender", "Batch"},
				{"1", "Jane Doe", "F", "Batch 3"},
			},
			wantIndex: 3,
		},
		{
			name: "single keyword is not enough",
			rows: [][]string{
				{"Name of the academy", "Address", "Established"},
			},
			wantErr: true,
		},
		{
			name: "keywords matched case-insensitively",
			rows: [][]string{
				{"NAME", "EMAIL", "PHONE"},
			},
			wantIndex: 0,
		},
		{
			name:    "empty sheet",
			rows:    [][]string{},
			wantErr: true,
		},
		{
			name: "header beyond the scan window",
			rows: append(make([][]string, 25),
				[]string{"Name", "Email", "Phone"}),
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			header, err := LocateHeader(tc.rows)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !apperr.IsKind(err, apperr.KindHeaderNotFound) {
					t.Fatalf("expected header-not-found, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if header.Index != tc.wantIndex {
				t.Errorf("index = %d, want %d", header.Index, tc.wantIndex)
			}
		})
	}
}

func TestParseReadsFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Name", "Email", "Phone"}); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &[]interface{}{"Jane Doe", "jane@example.com", "9876543210"}); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	rows, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "Jane Doe" {
		t.Errorf("rows[1][0] = %q, want %q", rows[1][0], "Jane Doe")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not a workbook")); err == nil {
		t.Fatal("expected an error for non-xlsx data")
	}
}

func TestIsBlankRow(t *testing.T) {
	if !isBlankRow([]string{"", "  ", "\t"}) {
		t.Error("whitespace-only row should be blank")
	}
	if isBlankRow([]string{"", "x"}) {
		t.Error("row with content should not be blank")
	}
	if !isBlankRow(nil) {
		t.Error("nil row should be blank")
	}
}
