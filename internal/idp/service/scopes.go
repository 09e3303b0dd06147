package service

import "strings"

// splitScope breaks a space-delimited scope string into its parts.
func splitScope(s string) []string {
	return strings.Fields(s)
}

func joinScope(parts []string) string {
	return strings.Join(parts, " ")
}

// intersectScopes returns the members of a that also appear in b,
// preserving a's order and dropping duplicates.
func intersectScopes(a, b []string) []string {
	set := map[string]struct{}{}
	for _, s := range b {
		set[s] = struct{}{}
	}
	seen := map[string]struct{}{}
	var out []string
	for _, s := range a {
		if _, ok := set[s]; !ok {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// effectiveScope resolves the scope granted for a request: an empty request
// inherits the client's full registered scope, otherwise the request is
// clamped to what the client registered.
func effectiveScope(requested, clientScope string) string {
	if strings.TrimSpace(requested) == "" {
		return clientScope
	}
	return joinScope(intersectScopes(splitScope(requested), splitScope(clientScope)))
}

// scopeContains reports whether the space-delimited scope string includes
// the given scope value.
func scopeContains(scope, want string) bool {
	for _, s := range splitScope(scope) {
		if s == want {
			return true
		}
	}
	return false
}
