package partner

import (
	"regexp"
	"strings"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// emailPattern only rejects values with more than one '@'.
// Delivery problems surface from the mail relay instead.
var emailPattern = regexp.MustCompile(`^[^@]*@?[^@]*$`)

// ValidEmail applies the permissive email shape check
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SplitEmails splits a comma-joined list, dropping blanks
func SplitEmails(joined string) []string {
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EmailList is the multi-value email field of the client form: an ordered
// list of input boxes. At least one box always exists.
type EmailList struct {
	boxes []string
}

// NewEmailList creates a list with the given boxes (one empty box if none)
func NewEmailList(boxes ...string) *EmailList {
	l := &EmailList{boxes: append([]string(nil), boxes...)}
	if len(l.boxes) == 0 {
		l.boxes = []string{""}
	}
	return l
}

// ParseEmailList creates one box per address of a comma-joined string
func ParseEmailList(joined string) *EmailList {
	return NewEmailList(SplitEmails(joined)...)
}

// Boxes returns a copy of the box values
func (l *EmailList) Boxes() []string {
	return append([]string(nil), l.boxes...)
}

// Len returns the number of boxes
func (l *EmailList) Len() int {
	return len(l.boxes)
}

// Set changes the value of box i
func (l *EmailList) Set(i int, value string) error {
	if i < 0 || i >= len(l.boxes) {
		return shared.NewDomainError("INVALID_EMAIL_INDEX", "Email box does not exist")
	}
	l.boxes[i] = value
	return nil
}

// Add appends an empty box
func (l *EmailList) Add() {
	l.boxes = append(l.boxes, "")
}

// Remove deletes box i. The last remaining box is cleared instead.
func (l *EmailList) Remove(i int) error {
	if i < 0 || i >= len(l.boxes) {
		return shared.NewDomainError("INVALID_EMAIL_INDEX", "Email box does not exist")
	}
	if len(l.boxes) == 1 {
		l.boxes[0] = ""
		return nil
	}
	l.boxes = append(l.boxes[:i], l.boxes[i+1:]...)
	return nil
}

// Joined returns the non-blank boxes joined by commas
func (l *EmailList) Joined() string {
	out := make([]string, 0, len(l.boxes))
	for _, b := range l.boxes {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, ",")
}

// Validate checks every non-blank box with ValidEmail
func (l *EmailList) Validate() error {
	for _, b := range l.boxes {
		b = strings.TrimSpace(b)
		if b != "" && !ValidEmail(b) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email: "+b)
		}
	}
	return nil
}
