package directory

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestResolveStatic(t *testing.T) {
	dir := NewStatic(DefaultCompanies)

	for name, code := range DefaultCompanies {
		ref, err := dir.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", name, err)
		}
		if ref.Code == "" {
			t.Errorf("Resolve(%q) returned empty code", name)
		}
		if ref.Name != name || ref.Code != code {
			t.Errorf("Resolve(%q) = %+v, want {%s %s}", name, ref, name, code)
		}
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	dir := NewStatic(DefaultCompanies)

	ref, err := dir.Resolve("  kajaria CERAMICS ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Code != "500233" {
		t.Errorf("got code %q, want 500233", ref.Code)
	}
}

func TestResolveAmbiguousCaseIsNotFound(t *testing.T) {
	dir := NewStatic(map[string]string{"ACME Ltd": "1", "Acme Ltd": "2"})

	if _, err := dir.Resolve("acme ltd"); err == nil {
		t.Fatal("expected ambiguous case-insensitive match to fail")
	}
	ref, err := dir.Resolve("Acme Ltd")
	if err != nil || ref.Code != "2" {
		t.Fatalf("exact match: got %+v, %v", ref, err)
	}
}

func TestResolveNotFound(t *testing.T) {
	dir := NewStatic(DefaultCompanies)

	_, err := dir.Resolve("Somany Ceramics")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nf.Name != "Somany Ceramics" {
		t.Errorf("NotFoundError.Name = %q", nf.Name)
	}
}

func TestSearch(t *testing.T) {
	dir := NewStatic(DefaultCompanies)

	tests := []struct {
		query string
		want  []string
	}{
		{"cera", []string{"Cera Sanitaryware", "Kajaria Ceramics"}},
		{"HINDWARE", []string{"Hindware Home Innovation"}},
		{"", []string{"Cera Sanitaryware", "Hindware Home Innovation", "Kajaria Ceramics"}},
		{"tiles", nil},
	}

	for _, tt := range tests {
		got := dir.Search(tt.query)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestNewStaticSkipsIncompleteEntries(t *testing.T) {
	dir := NewStatic(map[string]string{"Good": "1", "NoCode": "", "": "2"})
	if dir.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", dir.Len())
	}
}

func TestLoadTable(t *testing.T) {
	csvData := "\ufeffSR NO,NAME OF COMPANY,SCRIP CODE,GROUP\n" +
		"1,Cera Sanitaryware,532443,A\n" +
		"\n" +
		"2,\"Kajaria Ceramics, Ltd\",500233,A\n" +
		"3,No Code Ltd,,B\n" +
		"4,Short Row\n"

	dir, err := LoadTable(strings.NewReader(csvData), "", "")
	if err != nil {
		t.Fatalf("LoadTable returned error: %v", err)
	}

	want := []string{"Cera Sanitaryware", "Kajaria Ceramics, Ltd"}
	if got := dir.Search(""); !reflect.DeepEqual(got, want) {
		t.Fatalf("companies = %v, want %v", got, want)
	}

	ref, err := dir.Resolve("Kajaria Ceramics, Ltd")
	if err != nil || ref.Code != "500233" {
		t.Errorf("Resolve = %+v, %v", ref, err)
	}
}

func TestLoadTableMissingColumns(t *testing.T) {
	_, err := LoadTable(strings.NewReader("Company,Code\nA,1\n"), "", "")
	if err == nil {
		t.Fatal("expected error for missing columns")
	}

	dir, err := LoadTable(strings.NewReader("Company,Code\nA,1\n"), "company", "code")
	if err != nil {
		t.Fatalf("custom columns: %v", err)
	}
	if dir.Len() != 1 {
		t.Errorf("Len() = %d, want 1", dir.Len())
	}
}

func TestLoadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"NAME OF COMPANY", "SCRIP CODE"},
		{"Cera Sanitaryware", "532443"},
		{"Hindware Home Innovation", 543518},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	dir, err := LoadWorkbook(buf, "", "")
	if err != nil {
		t.Fatalf("LoadWorkbook returned error: %v", err)
	}
	ref, err := dir.Resolve("Hindware Home Innovation")
	if err != nil || ref.Code != "543518" {
		t.Errorf("Resolve = %+v, %v", ref, err)
	}
}

type fakeGetter struct {
	body     string
	err      error
	gotURL   string
	gotCalls int
}

func (g *fakeGetter) Get(_ context.Context, url, _ string) ([]byte, error) {
	g.gotURL = url
	g.gotCalls++
	return []byte(g.body), g.err
}

func TestLoadRemote(t *testing.T) {
	g := &fakeGetter{body: "Security Code,Issuer Name,Security Name\n500233,Kajaria Ceramics,KAJARIACER\n532443,Cera Sanitaryware,CERA\n"}

	dir, err := LoadRemote(context.Background(), g, "https://example.com/list.csv", "Issuer Name", "Security Code")
	if err != nil {
		t.Fatalf("LoadRemote returned error: %v", err)
	}
	if g.gotCalls != 1 || g.gotURL != "https://example.com/list.csv" {
		t.Errorf("getter called %d times with %q", g.gotCalls, g.gotURL)
	}
	ref, err := dir.Resolve("Cera Sanitaryware")
	if err != nil || ref.Code != "532443" {
		t.Errorf("Resolve = %+v, %v", ref, err)
	}
}

func TestLoadRemoteError(t *testing.T) {
	g := &fakeGetter{err: errors.New("boom")}
	if _, err := LoadRemote(context.Background(), g, "https://example.com/list.csv", "", ""); err == nil {
		t.Fatal("expected error")
	}
}
