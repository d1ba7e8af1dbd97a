// Package approval derives the view state of the approval surfaces from
// task and event snapshots: per-level summaries, the activity timeline and
// the advisory self-action restriction. Every function is pure; callers
// recompute on each new snapshot.
package approval

import (
	"sort"
	"strings"
)

// RoleSet is a set of normalized role names
type RoleSet map[string]struct{}

// NormalizeRoles lower-cases and trims each role, dropping empty ones.
// Normalizing an already normalized set yields the same set.
func NormalizeRoles(roles []string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		if n := normalizeRole(role); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Has reports whether the normalized form of role is in the set
func (s RoleSet) Has(role string) bool {
	_, ok := s[normalizeRole(role)]
	return ok
}

// Slice returns the roles in lexical order
func (s RoleSet) Slice() []string {
	out := make([]string, 0, len(s))
	for role := range s {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

// RolesOverlap reports whether a and b share at least one role after
// normalization. No roles on either side never overlaps.
func RolesOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	setB := NormalizeRoles(b)
	if len(setB) == 0 {
		return false
	}
	for _, role := range a {
		if n := normalizeRole(role); n != "" {
			if _, ok := setB[n]; ok {
				return true
			}
		}
	}
	return false
}

// relevantRoles returns the task's candidate roles the user also holds
func relevantRoles(candidateRoles []string, userRoles RoleSet) []string {
	var relevant []string
	for _, role := range candidateRoles {
		n := normalizeRole(role)
		if n == "" {
			continue
		}
		if _, ok := userRoles[n]; ok {
			relevant = append(relevant, n)
		}
	}
	return relevant
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
