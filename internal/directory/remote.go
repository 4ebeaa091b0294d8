package directory

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Getter downloads a URL. *exchange.Fetcher satisfies it.
type Getter interface {
	Get(ctx context.Context, url, accept string) ([]byte, error)
}

// LoadRemote downloads a reference table and keeps the two named columns.
// XLSX is detected by URL suffix; everything else is parsed as CSV.
func LoadRemote(ctx context.Context, g Getter, url, nameCol, codeCol string) (*Index, error) {
	body, err := g.Get(ctx, url, "text/csv,application/octet-stream,*/*")
	if err != nil {
		return nil, fmt.Errorf("failed to download company list: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(url), ".xlsx") {
		return LoadWorkbook(bytes.NewReader(body), nameCol, codeCol)
	}
	return LoadTable(bytes.NewReader(body), nameCol, codeCol)
}
