package apiclient

import "strings"

// DeploymentContext describes which admin API addresses are visible from where
// the client runs. PublicOnly models a context without access to internal or
// server-only configuration, such as a browser bundle.
type DeploymentContext struct {
	PublicOnly  bool
	ExplicitURL string
	InternalURL string
	PublicURL   string
	LocalURLs   []string
	DefaultURL  string
}

// Candidates returns the base URLs to try, highest priority first, without
// blanks or duplicates.
func (d DeploymentContext) Candidates() []string {
	if d.PublicOnly {
		for _, u := range []string{d.PublicURL, d.DefaultURL} {
			if u = normalizeBase(u); u != "" {
				return []string{u}
			}
		}
		return nil
	}

	ordered := []string{d.ExplicitURL, d.InternalURL, d.PublicURL}
	ordered = append(ordered, d.LocalURLs...)
	ordered = append(ordered, d.DefaultURL)

	seen := make(map[string]bool, len(ordered))
	var out []string
	for _, u := range ordered {
		u = normalizeBase(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func normalizeBase(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
