// Package filter applies the console's list-page filters to entity
// collections so that API-side results can be narrowed exactly the way the
// UI narrows its tables: values of the same filter kind are ORed, distinct
// kinds are ANDed, and filtered results collapse to set semantics on entity
// identity.
package filter

import (
	"strings"

	"github.com/kiali/kiali-qe-go/pkg/entity"
)

// Filter kind names as the console UI labels them.
const (
	Namespace    = "Namespace"
	IstioName    = "Istio Name"
	IstioType    = "Istio Type"
	ServiceName  = "Service Name"
	WorkloadName = "Workload Name"
	AppName      = "App Name"
)

// Filter is one active filter chip: a kind and a value.
type Filter struct {
	Name  string
	Value string
}

// Values returns the values of every filter of the given kind, in order.
func Values(filters []Filter, kind string) []string {
	var values []string
	for _, f := range filters {
		if f.Name == kind {
			values = append(values, f.Value)
		}
	}
	return values
}

// byKind groups filter values by their kind, preserving value order.
func byKind(filters []Filter) map[string][]string {
	kinds := make(map[string][]string)
	for _, f := range filters {
		kinds[f.Name] = append(kinds[f.Name], f.Value)
	}
	return kinds
}

// Apply filters a candidate collection. An item survives when, for every
// filter kind present, it matches at least one value of that kind. The match
// predicate decides per-kind semantics and returns true for kinds it does
// not understand, which leaves those filters without effect on the items.
//
// With no filters the input is returned as-is in discovery order. As soon as
// any filter applies, duplicates are dropped by entity identity and the
// result order is unspecified.
func Apply[T entity.Keyer](items []T, filters []Filter, match func(item T, kind, value string) bool) []T {
	if len(filters) == 0 {
		return items
	}
	kinds := byKind(filters)
	seen := make(map[string]struct{}, len(items))
	var kept []T
	for _, item := range items {
		if !matchesAllKinds(item, kinds, match) {
			continue
		}
		if _, dup := seen[item.Key()]; dup {
			continue
		}
		seen[item.Key()] = struct{}{}
		kept = append(kept, item)
	}
	return kept
}

func matchesAllKinds[T entity.Keyer](item T, kinds map[string][]string, match func(item T, kind, value string) bool) bool {
	for kind, values := range kinds {
		anyValue := false
		for _, value := range values {
			if match(item, kind, value) {
				anyValue = true
				break
			}
		}
		if !anyValue {
			return false
		}
	}
	return true
}

// ByName keeps the items whose name contains any of the given substrings,
// de-duplicated by entity identity. With no names the input is returned
// unchanged. This is the name restriction every list query accepts.
func ByName[T entity.Keyer](items []T, names []string, nameOf func(T) string) []T {
	if len(names) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	var kept []T
	for _, name := range names {
		for _, item := range items {
			if !strings.Contains(nameOf(item), name) {
				continue
			}
			if _, dup := seen[item.Key()]; dup {
				continue
			}
			seen[item.Key()] = struct{}{}
			kept = append(kept, item)
		}
	}
	return kept
}

// MatchIstioConfig is the per-kind predicate for Istio config entries: name
// filters are substring matches on the object name, type filters are
// substring matches against the full composite object type string, so a
// "Adapter" filter matches "Adapter: prometheus" entries too.
func MatchIstioConfig(c *entity.IstioConfig, kind, value string) bool {
	switch kind {
	case IstioName:
		return strings.Contains(c.Name, value)
	case IstioType:
		return strings.Contains(string(c.ObjectType), value)
	}
	return true
}
