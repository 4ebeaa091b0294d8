/*
Package directory resolves company display names to exchange security codes.

A directory is built once at startup, from a static mapping, a local table
file or a remote reference file, and is read-only afterwards.
*/
package directory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shanehull/corpactions/internal/types"
)

// Directory is the company universe the pipeline resolves names against.
type Directory interface {
	Resolve(name string) (types.CompanyRef, error)
	Search(query string) []string
	Companies() []types.CompanyRef
}

// NotFoundError is returned by Resolve when a name is not in the universe.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("company %q not found in directory", e.Name)
}

// Index is an immutable, in-memory Directory.
type Index struct {
	refs   []types.CompanyRef
	byName map[string]types.CompanyRef
}

func newIndex(refs []types.CompanyRef) *Index {
	idx := &Index{byName: make(map[string]types.CompanyRef, len(refs))}
	for _, r := range refs {
		r.Name = strings.TrimSpace(r.Name)
		r.Code = strings.TrimSpace(r.Code)
		if r.Name == "" || r.Code == "" {
			continue
		}
		if _, dup := idx.byName[r.Name]; dup {
			continue
		}
		idx.byName[r.Name] = r
		idx.refs = append(idx.refs, r)
	}
	sort.Slice(idx.refs, func(i, j int) bool { return idx.refs[i].Name < idx.refs[j].Name })
	return idx
}

// Resolve looks a company up by exact display name. A case-insensitive match
// is accepted when it is unambiguous.
func (x *Index) Resolve(name string) (types.CompanyRef, error) {
	name = strings.TrimSpace(name)
	if ref, ok := x.byName[name]; ok {
		return ref, nil
	}

	var found []types.CompanyRef
	for _, ref := range x.refs {
		if strings.EqualFold(ref.Name, name) {
			found = append(found, ref)
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}
	return types.CompanyRef{}, &NotFoundError{Name: name}
}

// Search returns the sorted display names containing query, ignoring case.
// An empty query matches everything.
func (x *Index) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var names []string
	for _, ref := range x.refs {
		if q == "" || strings.Contains(strings.ToLower(ref.Name), q) {
			names = append(names, ref.Name)
		}
	}
	return names
}

func (x *Index) Companies() []types.CompanyRef {
	out := make([]types.CompanyRef, len(x.refs))
	copy(out, x.refs)
	return out
}

func (x *Index) Len() int {
	return len(x.refs)
}
