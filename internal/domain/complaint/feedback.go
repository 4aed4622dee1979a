package complaint

import (
	"fmt"
	"strings"
)

// Feedback is the submitter's closure feedback. A complaint cannot close
// without it.
type Feedback struct {
	rating   int
	comments string
}

// NewFeedback validates and creates closure feedback.
func NewFeedback(rating int, comments string) (Feedback, error) {
	if rating < 1 || rating > 5 {
		return Feedback{}, fmt.Errorf("feedback rating must be between 1 and 5, got %d", rating)
	}
	comments = strings.TrimSpace(comments)
	if comments == "" {
		return Feedback{}, fmt.Errorf("feedback comments are required")
	}
	if len(comments) > 2000 {
		return Feedback{}, fmt.Errorf("feedback comments exceed maximum length of 2000 characters")
	}
	return Feedback{rating: rating, comments: comments}, nil
}

func (f Feedback) Rating() int      { return f.rating }
func (f Feedback) Comments() string { return f.comments }
