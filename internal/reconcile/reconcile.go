/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/

// Package reconcile compares named plugin inventories and reports which
// entities each side holds exclusively and which both share.
package reconcile

import (
	"sort"
	"strings"
)

// Collection is a named, deduplicated set of plugin names. Membership is
// byte-exact after whitespace trimming: two spellings differing only in case
// are distinct entities. Collections do not change once built.
type Collection struct {
	name    string
	members map[string]bool
}

// NewCollection builds a collection from raw names. Each name is trimmed;
// empty results are dropped.
func NewCollection(name string, names []string) Collection {
	members := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		members[n] = true
	}
	return Collection{name: name, members: members}
}

// Name returns the collection's display name.
func (c Collection) Name() string { return c.name }

// Len returns the number of distinct members.
func (c Collection) Len() int { return len(c.members) }

// Contains reports whether the exact name is a member.
func (c Collection) Contains(name string) bool { return c.members[name] }

// Names returns the members sorted lexicographically.
func (c Collection) Names() []string {
	out := make([]string, 0, len(c.members))
	for n := range c.members {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Result is the outcome of reconciling two collections. Each slice is sorted
// lexicographically, and together the three partition the union of the inputs.
type Result struct {
	OnlyInA []string
	OnlyInB []string
	Both    []string
}

// Reconcile computes (A − B, B − A, A ∩ B). Pure and total: empty inputs
// yield empty results, never an error.
func Reconcile(a, b Collection) Result {
	var res Result
	for name := range a.members {
		if b.members[name] {
			res.Both = append(res.Both, name)
		} else {
			res.OnlyInA = append(res.OnlyInA, name)
		}
	}
	for name := range b.members {
		if !a.members[name] {
			res.OnlyInB = append(res.OnlyInB, name)
		}
	}
	sort.Strings(res.OnlyInA)
	sort.Strings(res.OnlyInB)
	sort.Strings(res.Both)
	return res
}
