package complaint

import "fmt"

// Category classifies a grievance. SLA timings are configured per
// category and escalation level.
type Category string

const (
	CategoryMedicationError Category = "medication_error"
	CategoryDiscrimination  Category = "discrimination"
	CategoryServiceQuality  Category = "service_quality"
	CategoryStaffBehavior   Category = "staff_behavior"
	CategoryFacilityIssues  Category = "facility_issues"
	CategoryBillingDispute  Category = "billing_dispute"
	CategoryOther           Category = "other"
)

var validCategories = map[Category]bool{
	CategoryMedicationError: true,
	CategoryDiscrimination:  true,
	CategoryServiceQuality:  true,
	CategoryStaffBehavior:   true,
	CategoryFacilityIssues:  true,
	CategoryBillingDispute:  true,
	CategoryOther:           true,
}

// NewCategory parses a string into a Category.
func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid complaint category: %s", s)
	}
	return c, nil
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool { return validCategories[c] }

// AllCategories returns every known category.
func AllCategories() []Category {
	return []Category{
		CategoryMedicationError,
		CategoryDiscrimination,
		CategoryServiceQuality,
		CategoryStaffBehavior,
		CategoryFacilityIssues,
		CategoryBillingDispute,
		CategoryOther,
	}
}
