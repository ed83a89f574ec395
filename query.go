package insight

import "strings"

// QueryNeeds flags which repository data a free-form query calls for. The
// two flags are independent; a query may set both, one, or neither.
type QueryNeeds struct {
	Commits bool
	Repo    bool
}

var (
	commitKeywords = []string{
		"commit", "change", "diff", "modified", "added", "deleted",
		"history", "previous", "version", "update",
	}
	repoKeywords = []string{
		"repo", "repository", "project", "codebase", "structure",
		"directory", "files", "organization",
	}
)

// classifyQuery maps a query string to data needs using case-insensitive
// substring matching. It is a deliberate heuristic, not intent inference:
// there is no stemming and no negation handling, so "no commits" still
// flags commit data.
func classifyQuery(query string) QueryNeeds {
	lowered := strings.ToLower(query)
	return QueryNeeds{
		Commits: containsAny(lowered, commitKeywords),
		Repo:    containsAny(lowered, repoKeywords),
	}
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
