package cmdbuild

import "strings"

// guidColumn is the item-identifier column that must never be rewritten.
// Rewriting it corrupts unique item references across feeds and clients.
const guidColumn = "guid"

// 🔁 SearchReplace rewrites one URL pair across the application's database
// through the CMS's own CLI, so serialized values survive the rewrite.
type SearchReplace struct {
	Path        string   // Application root the CLI operates on
	From        string   // Old URL
	To          string   // New URL
	SkipColumns []string // Extra columns to skip; guid is always skipped
}

// Build returns the fully quoted search-replace command line.
func (s SearchReplace) Build() (string, error) {
	if s.Path == "" {
		return "", missingField("search-replace", "path")
	}
	if s.From == "" {
		return "", missingField("search-replace", "from")
	}
	if s.To == "" {
		return "", missingField("search-replace", "to")
	}

	skip := []string{guidColumn}
	for _, c := range s.SkipColumns {
		if c != guidColumn {
			skip = append(skip, c)
		}
	}

	args := []string{
		"wp", "search-replace", s.From, s.To,
		"--path=" + s.Path,
		"--skip-columns=" + strings.Join(skip, ","),
		"--all-tables",
	}
	return join(args), nil
}
