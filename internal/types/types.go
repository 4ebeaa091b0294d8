/*
Package types holds the records shared by every stage of the announcement pipeline.
*/
package types

// CompanyRef identifies a listed company by display name and exchange security code.
type CompanyRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Announcement is one normalized corporate action / announcement entry.
// Date is kept exactly as the source published it; see filter.ParseDate.
type Announcement struct {
	Company       CompanyRef `json:"company"`
	Date          string     `json:"date"`
	Description   string     `json:"description"`
	Details       string     `json:"details,omitempty"`
	AttachmentURL string     `json:"attachment_url,omitempty"`
}

// Shape names the wire format of an upstream source.
type Shape string

const (
	ShapeJSON Shape = "json"
	ShapeHTML Shape = "html"
)

func (s Shape) Valid() bool {
	return s == ShapeJSON || s == ShapeHTML
}
