package model

// Customer segments.
const (
	SegmentRegular = "Regular"
	SegmentPremium = "Premium"
	SegmentVIP     = "VIP"
	SegmentNew     = "New"
)

// Segments lists every customer segment in display order.
var Segments = []string{SegmentRegular, SegmentPremium, SegmentVIP, SegmentNew}

// Customer is a buyer. Email and phone are optional.
type Customer struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
	JoinDate Date   `json:"joinDate" db:"join_date"`
	Segment  string `json:"segment" db:"segment"`
}

// CustomerFilter narrows a customer listing.
// Search matches name, email or segment.
type CustomerFilter struct {
	Search  string
	Segment string
	Limit   int
	Offset  int
}

// IsValidSegment reports whether s is a known customer segment.
func IsValidSegment(s string) bool {
	for _, seg := range Segments {
		if seg == s {
			return true
		}
	}
	return false
}

// Validate checks the required fields of a customer.
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ValidationError("customer name is required")
	}
	if c.Segment != "" && !IsValidSegment(c.Segment) {
		return ValidationError("customer segment must be one of Regular, Premium, VIP or New")
	}
	return nil
}
