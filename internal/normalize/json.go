package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shanehull/corpactions/internal/exchange"
	"github.com/shanehull/corpactions/internal/types"
)

const defaultTableKey = "Table"

// Upstream field names of the BSE announcement rows.
const (
	fieldDate       = "News_dt"
	fieldSubject    = "Newssub"
	fieldDetails    = "news_detl"
	fieldAttachment = "ATTACHMENTNAME"
)

func fromJSON(raw []byte, src exchange.Source, company types.CompanyRef) ([]types.Announcement, error) {
	anns := []types.Announcement{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return anns, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return anns, &ParseError{Shape: types.ShapeJSON, Err: err}
	}

	key := src.TableKey
	if key == "" {
		key = defaultTableKey
	}
	table, ok := lookup(doc, key)
	if !ok || len(table) == 0 || string(table) == "null" {
		return anns, nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(table, &rows); err != nil {
		return anns, &ParseError{Shape: types.ShapeJSON, Err: fmt.Errorf("%s is not a list of rows: %w", key, err)}
	}

	for _, rawRow := range rows {
		row, ok := decodeRow(rawRow)
		if !ok {
			continue
		}
		ann := types.Announcement{
			Company:       company,
			Date:          field(row, fieldDate),
			Description:   field(row, fieldSubject),
			Details:       field(row, fieldDetails),
			AttachmentURL: AttachmentURL(src.AttachmentBaseURL, field(row, fieldAttachment)),
		}
		if ann.Date == "" && ann.Description == "" && ann.Details == "" && ann.AttachmentURL == "" {
			continue
		}
		anns = append(anns, ann)
	}
	return anns, nil
}

// decodeRow reports false for anything that is not a JSON object, so one
// malformed row does not cost the rest of the table.
func decodeRow(raw json.RawMessage) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var row map[string]any
	if err := dec.Decode(&row); err != nil || row == nil {
		return nil, false
	}
	return row, true
}

// lookup prefers an exact key and falls back to a case-insensitive match.
func lookup[V any](m map[string]V, key string) (V, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

func field(row map[string]any, key string) string {
	v, ok := lookup(row, key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(lineBreaks.Replace(stringify(v)))
}

// lineBreaks folds CRLF and lone CR to LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
