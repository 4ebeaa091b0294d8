package ai

import (
	"fmt"
	"strings"

	"github.com/shanehull/corpactions/internal/types"
)

var urlTemplates = []string{
	"https://www.bseindia.com/stock-share-price/x/x/%s/",
	"https://www.bseindia.com/stock-share-price/x/x/%s/corp-actions/",
	"https://www.screener.in/company/%s/",
}

const systemInstruction = `
# [INSTRUCTION]

You are an equity analyst summarizing exchange filings for a single listed company.

You are given the company's recent exchange announcements as a dated list. Identify the corporate actions among them and summarize what a shareholder needs to know.

Use the search tool and the context URL tool to confirm record dates, ratios and amounts where the announcement subject alone is ambiguous.

---

# [CATEGORIES]

- **Dividend:** interim, final or special dividends. Give the amount per share, record date and payment date.
- **Bonus / Split:** bonus issues and face-value splits. Give the ratio and record date.
- **Buyback:** tender or open-market buybacks. Give the price, size and dates.
- **Rights Issue:** give the ratio, price and discount to market.
- **Merger / Demerger / Acquisition:** schemes of arrangement, acquisitions and disposals, with consideration and swap ratios.
- **Board / Management:** appointments and resignations of directors, KMP and auditors.
- **Results:** board meetings for financial results, with the period covered.
- **Other:** anything material that fits none of the above.

---

# [RULES]

- Every corporate action "details" field must contain at least one concrete number, ratio or date taken from the announcements.
- Do not invent actions that are not supported by the listed announcements.
- Write 3-5 summary bullet points, most recent first.
`

func contextURLs(code string) []string {
	urls := make([]string, 0, len(urlTemplates))
	for _, t := range urlTemplates {
		urls = append(urls, fmt.Sprintf(t, code))
	}
	return urls
}

// buildPrompt lists the announcements oldest-last, the order the source publishes them.
func buildPrompt(company types.CompanyRef, records []types.Announcement) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company: %s (security code %s)\n\n", company.Name, company.Code))

	sb.WriteString("Announcements:\n")
	for _, a := range records {
		sb.WriteString(fmt.Sprintf("- %s | %s", a.Date, a.Description))
		if a.Details != "" {
			sb.WriteString(" | " + strings.Join(strings.Fields(a.Details), " "))
		}
		if a.AttachmentURL != "" {
			sb.WriteString(" | " + a.AttachmentURL)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nReference pages:\n")
	for _, u := range contextURLs(company.Code) {
		sb.WriteString(u + "\n")
	}
	return sb.String()
}
