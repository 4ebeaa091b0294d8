/*
Package normalize converts raw upstream payloads, JSON tables or HTML tables,
into a uniform sequence of announcements.
*/
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shanehull/corpactions/internal/exchange"
	"github.com/shanehull/corpactions/internal/types"
)

var whitespaceRe = regexp.MustCompile(`[\n\t\r\s\xA0]+`)

// ParseError reports a payload that could not be decoded at all. The
// accompanying slice is always empty.
type ParseError struct {
	Shape types.Shape
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s payload: %v", e.Shape, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Normalize dispatches on the source shape. An absent or empty table yields
// an empty, non-nil slice and no error.
func Normalize(raw []byte, src exchange.Source, company types.CompanyRef) ([]types.Announcement, error) {
	switch src.Shape {
	case types.ShapeJSON:
		return fromJSON(raw, src, company)
	case types.ShapeHTML:
		return fromHTML(raw, src, company)
	default:
		return []types.Announcement{}, &ParseError{Shape: src.Shape, Err: fmt.Errorf("unknown source shape %q", src.Shape)}
	}
}

// AttachmentURL resolves a source attachment reference against base. An empty
// reference stays empty rather than becoming a bare base URL.
func AttachmentURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return ref
	}
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return ref
	}
	return base + "/" + strings.TrimLeft(ref, "/")
}

func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
