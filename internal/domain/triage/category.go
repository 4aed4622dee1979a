package triage

import "fmt"

// Category is the triage disposition.
type Category string

const (
	CategorySelfCare  Category = "self_care"
	CategoryPHC       Category = "phc"
	CategoryEmergency Category = "emergency"
)

var validCategories = map[Category]bool{
	CategorySelfCare:  true,
	CategoryPHC:       true,
	CategoryEmergency: true,
}

// NewCategory parses a string into a Category.
func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid triage category: %s", s)
	}
	return c, nil
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool { return validCategories[c] }

func (c Category) IsEmergency() bool { return c == CategoryEmergency }
