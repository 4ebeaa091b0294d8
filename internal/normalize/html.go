package normalize

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/shanehull/corpactions/internal/exchange"
	"github.com/shanehull/corpactions/internal/types"
)

// Positional columns of the announcement table.
const (
	colDate = iota
	colDescription
	colAttachment
)

func fromHTML(raw []byte, src exchange.Source, company types.CompanyRef) ([]types.Announcement, error) {
	anns := []types.Announcement{}
	if len(bytes.TrimSpace(raw)) == 0 || src.TableID == "" {
		return anns, nil
	}

	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return anns, &ParseError{Shape: types.ShapeHTML, Err: err}
	}
	doc := goquery.NewDocumentFromNode(root)

	table := doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == src.TableID
	}).First()
	if table.Length() == 0 {
		return anns, nil
	}
	tableNode := table.Get(0)

	// Rows of nested tables belong to those tables, not this one.
	rows := table.Find("tr").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest("table").Get(0) == tableNode
	})

	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.ChildrenFiltered("td,th")

		var ann types.Announcement
		populated := false
		cells.EachWithBreak(func(j int, cell *goquery.Selection) bool {
			text := cleanText(cell.Text())
			switch j {
			case colDate:
				ann.Date = text
			case colDescription:
				ann.Description = text
			case colAttachment:
				ref := text
				if href, ok := cell.Find("a[href]").First().Attr("href"); ok {
					ref = href
				}
				ann.AttachmentURL = AttachmentURL(src.AttachmentBaseURL, ref)
			default:
				return false
			}
			if text != "" || ann.AttachmentURL != "" {
				populated = true
			}
			return true
		})

		if !populated {
			return
		}
		ann.Company = company
		anns = append(anns, ann)
	})

	return anns, nil
}
