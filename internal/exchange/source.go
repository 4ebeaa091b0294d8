package exchange

import (
	"net/url"
	"strings"

	"github.com/shanehull/corpactions/internal/types"
)

const (
	bseAnnouncementsURL = "https://api.bseindia.com/BseIndiaAPI/api/AnnGetData/w?strCat=-1&strPrevDate=&strScrip=%s&strSearch=&strToDate=&strType=C"
	bseBaseURL          = "https://www.bseindia.com"
	bseTableKey         = "Table"

	codePlaceholder = "%s"
)

// Source describes one upstream announcement source. Shape selects the
// normalizer; TableKey applies to JSON sources and TableID to HTML sources.
type Source struct {
	Name              string      `yaml:"name"`
	Shape             types.Shape `yaml:"shape"`
	URLTemplate       string      `yaml:"url"`
	AttachmentBaseURL string      `yaml:"attachment_base_url"`
	TableKey          string      `yaml:"table_key"`
	TableID           string      `yaml:"table_id"`
}

// DefaultSource is the BSE corporate announcements API.
func DefaultSource() Source {
	return Source{
		Name:              "bse",
		Shape:             types.ShapeJSON,
		URLTemplate:       bseAnnouncementsURL,
		AttachmentBaseURL: bseBaseURL,
		TableKey:          bseTableKey,
	}
}

// URL substitutes the escaped security code for every %s in the template.
func (s Source) URL(code string) string {
	return strings.ReplaceAll(s.URLTemplate, codePlaceholder, url.QueryEscape(strings.TrimSpace(code)))
}

func (s Source) accept() string {
	if s.Shape == types.ShapeHTML {
		return "text/html,application/xhtml+xml"
	}
	return "application/json"
}

// CacheKey identifies the request a code maps to for this source.
func (s Source) CacheKey(code string) string {
	return string(s.Shape) + "|" + s.Name + "|" + strings.TrimSpace(code)
}
