package directory

import "github.com/shanehull/corpactions/internal/types"

// DefaultCompanies is the built-in BSE mapping used when no other company
// source is configured.
var DefaultCompanies = map[string]string{
	"Cera Sanitaryware":        "532443",
	"Hindware Home Innovation": "543518",
	"Kajaria Ceramics":         "500233",
}

// NewStatic builds a directory from a name -> code mapping.
func NewStatic(m map[string]string) *Index {
	refs := make([]types.CompanyRef, 0, len(m))
	for name, code := range m {
		refs = append(refs, types.CompanyRef{Name: name, Code: code})
	}
	return newIndex(refs)
}
