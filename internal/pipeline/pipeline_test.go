package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shanehull/corpactions/internal/cache"
	"github.com/shanehull/corpactions/internal/directory"
	"github.com/shanehull/corpactions/internal/exchange"
	"github.com/shanehull/corpactions/internal/filter"
	"github.com/shanehull/corpactions/internal/types"
)

const kajariaJSON = `{"Table":[
	{"News_dt":"15/06/2024","Newssub":"Dividend","ATTACHMENTNAME":"/d.pdf"},
	{"News_dt":"02/07/2024","Newssub":"Board Meeting","news_detl":"to consider bonus issue"},
	{"News_dt":"","Newssub":"Undated clarification"}
]}`

type upstream struct {
	srv   *httptest.Server
	calls map[string]*int32
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{calls: map[string]*int32{"500233": new(int32), "532443": new(int32), "543518": new(int32)}}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("strScrip")
		if c, ok := u.calls[code]; ok {
			atomic.AddInt32(c, 1)
		}
		switch code {
		case "500233":
			w.Write([]byte(kajariaJSON))
		case "532443":
			http.Error(w, "blocked", http.StatusForbidden)
		case "543518":
			w.Write([]byte(`{"Table":`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) source() exchange.Source {
	return exchange.Source{
		Name:              "test",
		Shape:             types.ShapeJSON,
		URLTemplate:       u.srv.URL + "/api?strScrip=%s",
		AttachmentBaseURL: "https://www.bseindia.com",
		TableKey:          "Table",
	}
}

func newService(u *upstream, opts ...Option) *Service {
	f := exchange.NewFetcher(exchange.FetcherConfig{Timeout: 2 * time.Second}, nil)
	return New(directory.NewStatic(directory.DefaultCompanies), f, u.source(), opts...)
}

func TestLookup(t *testing.T) {
	u := newUpstream(t)
	svc := newService(u)

	res := svc.Lookup(context.Background(), "Kajaria Ceramics", Query{})
	if res.Warning != "" {
		t.Fatalf("unexpected warning: %s", res.Warning)
	}
	if len(res.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(res.Records))
	}
	if res.Records[0].AttachmentURL != "https://www.bseindia.com/d.pdf" {
		t.Errorf("attachment = %q", res.Records[0].AttachmentURL)
	}
	if res.Company.Code != "500233" {
		t.Errorf("company = %+v", res.Company)
	}
}

func TestLookupFilters(t *testing.T) {
	u := newUpstream(t)
	svc := newService(u)

	june, _ := filter.ParseRange("01/06/2024", "30/06/2024")
	res := svc.Lookup(context.Background(), "Kajaria Ceramics", Query{Range: june})
	if len(res.Records) != 1 || res.Records[0].Description != "Dividend" {
		t.Errorf("June: got %+v", res.Records)
	}

	res = svc.Lookup(context.Background(), "Kajaria Ceramics", Query{Search: "BONUS"})
	if len(res.Records) != 1 || res.Records[0].Description != "Board Meeting" {
		t.Errorf("search: got %+v", res.Records)
	}
}

func TestLookupFailuresBecomeWarnings(t *testing.T) {
	u := newUpstream(t)
	svc := newService(u)

	tests := []struct {
		name        string
		company     string
		wantWarning string
	}{
		{"not found", "Somany Ceramics", "not in the company list"},
		{"non-OK status", "Cera Sanitaryware", "status 403"},
		{"malformed payload", "Hindware Home Innovation", "Could not read announcements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.Lookup(context.Background(), tt.company, Query{})
			if res.Records == nil || len(res.Records) != 0 {
				t.Errorf("want empty non-nil records, got %#v", res.Records)
			}
			if !strings.Contains(res.Warning, tt.wantWarning) {
				t.Errorf("warning = %q, want it to contain %q", res.Warning, tt.wantWarning)
			}
		})
	}
}

func TestLookupIsIdempotent(t *testing.T) {
	u := newUpstream(t)
	svc := newService(u)

	a := svc.Lookup(context.Background(), "Kajaria Ceramics", Query{})
	b := svc.Lookup(context.Background(), "Kajaria Ceramics", Query{})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated lookups differ:\n%+v\n%+v", a, b)
	}
	if n := atomic.LoadInt32(u.calls["500233"]); n != 2 {
		t.Errorf("upstream saw %d requests, want 2 without a cache", n)
	}
}

func TestLookupUsesCache(t *testing.T) {
	u := newUpstream(t)
	memo, err := cache.NewManager(time.Hour, "UTC")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	svc := newService(u, WithCache(memo))

	first := svc.Lookup(context.Background(), "Kajaria Ceramics", Query{})
	second := svc.Lookup(context.Background(), "Kajaria Ceramics", Query{})
	if !reflect.DeepEqual(first, second) {
		t.Error("cached lookup differs from fetched lookup")
	}
	if n := atomic.LoadInt32(u.calls["500233"]); n != 1 {
		t.Errorf("upstream saw %d requests, want 1 with a cache", n)
	}

	failed := svc.Lookup(context.Background(), "Cera Sanitaryware", Query{})
	if failed.Warning == "" || memo.Len() != 1 {
		t.Errorf("failures must not be cached: warning=%q len=%d", failed.Warning, memo.Len())
	}
}

func TestLookupAll(t *testing.T) {
	u := newUpstream(t)
	svc := newService(u)

	results := svc.LookupAll(context.Background(), nil, Query{})
	if len(results) != 3 {
		t.Fatalf("got %d results, want one per company", len(results))
	}
	names := []string{results[0].Company.Name, results[1].Company.Name, results[2].Company.Name}
	want := []string{"Cera Sanitaryware", "Hindware Home Innovation", "Kajaria Ceramics"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
	if len(results[2].Records) != 3 || results[0].Warning == "" || results[1].Warning == "" {
		t.Errorf("unexpected results: %+v", results)
	}

	results = svc.LookupAll(context.Background(), []string{"Kajaria Ceramics", "Nobody"}, Query{})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestLookupAllCancelled(t *testing.T) {
	u := newUpstream(t)
	svc := newService(u)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, r := range svc.LookupAll(ctx, nil, Query{}) {
		if r.Warning == "" || len(r.Records) != 0 {
			t.Errorf("cancelled lookup for %s returned %+v", r.Company.Name, r)
		}
	}
	for code, c := range u.calls {
		if n := atomic.LoadInt32(c); n != 0 {
			t.Errorf("code %s fetched %d times after cancellation", code, n)
		}
	}
}

type fetcherFunc func(ctx context.Context, src exchange.Source, code string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, src exchange.Source, code string) ([]byte, error) {
	return f(ctx, src, code)
}

func TestLookupCancelledMidRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := fetcherFunc(func(ctx context.Context, src exchange.Source, code string) ([]byte, error) {
		cancel()
		return nil, &exchange.TransportError{URL: src.URL(code), Err: ctx.Err()}
	})
	svc := New(directory.NewStatic(directory.DefaultCompanies), f, exchange.DefaultSource())

	r := svc.Lookup(ctx, "Kajaria Ceramics", Query{})
	if r.Warning != "Lookup for Kajaria Ceramics was cancelled." {
		t.Errorf("Warning = %q", r.Warning)
	}
}

func TestWarning(t *testing.T) {
	ref := types.CompanyRef{Name: "Kajaria Ceramics", Code: "500233"}
	url := "https://api.bseindia.com/x"

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &directory.NotFoundError{Name: "Nobody"}, `Company "Nobody" is not in the company list.`},
		{"status", &exchange.TransportError{URL: url, StatusCode: 403}, "Error fetching Kajaria Ceramics: upstream returned status 403."},
		{"cancelled transport", &exchange.TransportError{URL: url, Err: context.Canceled}, "Lookup for Kajaria Ceramics was cancelled."},
		{"deadline transport", &exchange.TransportError{URL: url, Err: context.DeadlineExceeded}, "Lookup for Kajaria Ceramics was cancelled."},
		{"cancelled", context.Canceled, "Lookup for Kajaria Ceramics was cancelled."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Warning(ref, tt.err); got != tt.want {
				t.Errorf("Warning = %q, want %q", got, tt.want)
			}
		})
	}
}
