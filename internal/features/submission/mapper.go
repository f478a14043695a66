package submission

import (
	"regexp"
	"strings"

	"go-recruit/internal/features/cadet"
)

var newlineRun = regexp.MustCompile(`[\r\n]+`)

// rowValues pairs an ordered label list with a label-to-value map. Labels
// keep the position of their first occurrence; a duplicate label overwrites
// the stored value (last one wins) without moving in the order.
type rowValues struct {
	labels []string
	values map[string]string
}

func newRowValues(row []string, headerLabels []string) *rowValues {
	rv := &rowValues{values: make(map[string]string, len(headerLabels))}
	for i, raw := range headerLabels {
		label := cleanLabel(raw)
		if label == "" {
			continue
		}
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		if _, seen := rv.values[label]; !seen {
			rv.labels = append(rv.labels, label)
		}
		rv.values[label] = value
	}
	return rv
}

// cleanLabel collapses embedded newline runs to a single space and trims.
// Multi-line header cells are common in hand-built rosters.
func cleanLabel(raw string) string {
	return strings.TrimSpace(newlineRun.ReplaceAllString(raw, " "))
}

// get resolves a field from its synonyms. Each synonym is tried against the
// labels in header order: an exact match first, then case-insensitively,
// where a label also matches when it merely contains the synonym. The first
// matched label decides the field even when its cell is empty, so earlier
// synonyms take precedence over later ones.
func (rv *rowValues) get(synonyms ...string) string {
	for _, syn := range synonyms {
		if v, ok := rv.values[syn]; ok {
			return v
		}
		lowerSyn := strings.ToLower(syn)
		for _, label := range rv.labels {
			if strings.Contains(strings.ToLower(label), lowerSyn) {
				return rv.values[label]
			}
		}
	}
	return ""
}

func (rv *rowValues) getOrDefault(def string, synonyms ...string) string {
	if v := rv.get(synonyms...); v != "" {
		return v
	}
	return def
}

// MapRow turns one data row into a cadet record using the located header
// labels. Unrecognized columns are ignored; missing ones stay empty except
// course and batch, which fall back to defaults.
func MapRow(row []string, headerLabels []string) *cadet.Cadet {
	rv := newRowValues(row, headerLabels)

	return &cadet.Cadet{
		Name:   rv.get("Name as in INDOS Cert", "Name", "Applicant Name", "Candidate Name", "Cadet Name"),
		Email:  rv.get("Email ID", "Email", "Email Address", "Student Email"),
		Phone:  rv.get("Contact Number", "Phone", "Mobile", "Mobile No", "Contact"),
		Course: rv.getOrDefault("General", "Course", "Stream", "Deck/ Engine"),
		Batch:  rv.getOrDefault("Batch 1", "Batch", "Batch No", "Passing Out Date"),

		Gender:         rv.get("Gender", "Sex"),
		DOB:            rv.get("Date of Birth", "DOB", "Birth Date"),
		IndosNumber:    rv.get("INDoS Number", "INDoS No", "Indos"),
		CDCNumber:      rv.get("CDC Number", "CDC No", "CDC"),
		PassportNumber: rv.get("Passport Number", "Passport No", "Passport"),

		TenthPercentage:   rv.get("10th Avg %", "10th %", "10th Percentage", "X %", "SSLC %"),
		TwelfthPercentage: rv.get("12th PCM Avg %", "12th %", "12th Percentage", "XII %", "HSC %"),
		PCMPercentage:     rv.get("PCM %", "PCM Percentage"),
		DegreePercentage:  rv.get("Degree %", "Degree Percentage", "Graduation %", "BE/BTech %", "IMU Avg All Semester %", "IMU Avg"),

		Height: rv.get("Height in CMs", "Height (cms)", "Height"),
		Weight: rv.get("Weight in KGs", "Weight (kgs)", "Weight"),

		Hometown:        rv.get("Home town or nearby Airport", "Home town", "Hometown", "Airport"),
		PassingOutDate:  rv.get("Passing Out Date", "Passing Out"),
		AgeAtPassingOut: rv.get("Age when Passing Out", "Age"),
		BatchRank:       rv.get("BATCH RANK OUT OF 72 CADETS", "Batch Rank"),
		NoOfArrears:     rv.get("N0 OF ARREARS", "No of Arrears", "Arrears"),

		TenthBoard:   rv.get("10th Std Board", "10th Board"),
		TenthYear:    rv.get("10th Std Pass out Year", "10th Year"),
		TenthMaths:   rv.get("10th Std Maths", "10th Maths"),
		TenthScience: rv.get("10th Std Science", "10th Science"),
		TenthEnglish: rv.get("10th Std English", "10th English"),

		TwelfthBoard:     rv.get("12th Std Board", "12th Board"),
		TwelfthYear:      rv.get("12th Std pass out year", "12th Year"),
		TwelfthEnglish:   rv.get("12th Std English", "12th English"),
		TwelfthPhysics:   rv.get("12th Std Physics", "12th Physics"),
		TwelfthChemistry: rv.get("12th Std Chemistry", "12th Chemistry"),
		TwelfthMaths:     rv.get("12th Std Maths", "12th Maths"),

		IMURank:          rv.get("IMU Rank", "IMU Rank =<3000"),
		IMUAvgPercentage: rv.get("IMU Avg All Semester %", "IMU Avg"),
		IMUSem1:          rv.get("IMU Sem 1 Percentage"),
		IMUSem2:          rv.get("IMU Sem 2 Percentage"),
		IMUSem3:          rv.get("IMU Sem 3 Percentage"),
		IMUSem4:          rv.get("IMU Sem 4 Percentage"),
		IMUSem5:          rv.get("IMU Sem 5 Percentage"),
		IMUSem6:          rv.get("IMU Sem 6 Percentage"),
		IMUSem7:          rv.get("IMU Sem 7 Percentage"),
		IMUSem8:          rv.get("IMU Sem 8 Percentage"),

		BMI:             rv.get("BMI<25", "BMI"),
		ExtraCurricular: rv.get("Any Extra Curricular achievement / participation / projects", "Extra Curricular", "Achievements"),
	}
}
