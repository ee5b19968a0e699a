package remote

import (
	"strings"
)

var nameEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// ListParams selects the direct, non-trashed children of a folder.
// An empty Name lists every child.
type ListParams struct {
	ParentID string
	Name     string
}

// Query renders the params in the store's query language.
func (p *ListParams) Query() string {
	var sb strings.Builder
	sb.WriteString(QuoteString(p.ParentID))
	sb.WriteString(" in parents and not trashed")
	if p.Name != "" {
		sb.WriteString(" and name = ")
		sb.WriteString(QuoteString(p.Name))
	}
	return sb.String()
}

// QuoteString wraps s in single quotes, escaping backslashes and single quotes.
func QuoteString(s string) string {
	return "'" + nameEscaper.Replace(s) + "'"
}
