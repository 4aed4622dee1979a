package vaccination

import (
	"sort"
	"time"
)

// Dose names one (vaccine, dose number) pair.
type Dose struct {
	VaccineName string
	DoseNumber  int
}

// ScheduleRule is one entry of the immunization schedule: the dose and
// the age, in days from birth, at which it falls due.
type ScheduleRule struct {
	VaccineName string
	DoseNumber  int
	DueAgeDays  int
}

// DefaultSchedule returns the simplified UIP schedule.
func DefaultSchedule() []ScheduleRule {
	return []ScheduleRule{
		{"BCG", 1, 0},
		{"OPV", 1, 0},
		{"Hepatitis B", 1, 0},
		{"DPT", 1, 42},
		{"OPV", 2, 42},
		{"Hepatitis B", 2, 42},
		{"DPT", 2, 70},
		{"OPV", 3, 70},
		{"DPT", 3, 98},
		{"OPV", 4, 98},
		{"Hepatitis B", 3, 98},
		{"MMR", 1, 270},
		{"DPT", 4, 540},
		{"OPV", 5, 540},
		{"MMR", 2, 540},
	}
}

// DueVaccine is the earliest unadministered dose on the schedule.
type DueVaccine struct {
	VaccineName string
	DoseNumber  int
	DueDate     time.Time
	Overdue     bool
}

// NextDue walks the schedule in due-age order and returns the first dose
// not yet administered. The second return is false when every scheduled
// dose has been recorded.
func NextDue(schedule []ScheduleRule, dob time.Time, administered map[Dose]bool, now time.Time) (DueVaccine, bool) {
	ordered := make([]ScheduleRule, len(schedule))
	copy(ordered, schedule)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DueAgeDays < ordered[j].DueAgeDays
	})

	for _, rule := range ordered {
		dose := Dose{VaccineName: rule.VaccineName, DoseNumber: rule.DoseNumber}
		if administered[dose] {
			continue
		}
		dueDate := dob.AddDate(0, 0, rule.DueAgeDays)
		return DueVaccine{
			VaccineName: rule.VaccineName,
			DoseNumber:  rule.DoseNumber,
			DueDate:     dueDate,
			Overdue:     dueDate.Before(now),
		}, true
	}

	return DueVaccine{}, false
}
