package consent

import "fmt"

// Category is the data domain a consent receipt covers.
type Category string

const (
	CategoryTracking   Category = "tracking"
	CategoryCloudSync  Category = "cloud_sync"
	CategoryNeuro      Category = "neuro"
	CategoryComplaints Category = "complaints"
	CategoryAnalytics  Category = "analytics"
)

var validCategories = map[Category]bool{
	CategoryTracking:   true,
	CategoryCloudSync:  true,
	CategoryNeuro:      true,
	CategoryComplaints: true,
	CategoryAnalytics:  true,
}

// NewCategory parses a string into a Category.
func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid consent category: %s", s)
	}
	return c, nil
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool { return validCategories[c] }

// AllCategories returns the closed set of consent categories.
func AllCategories() []Category {
	return []Category{
		CategoryTracking,
		CategoryCloudSync,
		CategoryNeuro,
		CategoryComplaints,
		CategoryAnalytics,
	}
}
