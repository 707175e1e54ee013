// Package entity holds the canonical value types the QE suite reconciles:
// the same service, workload, application and Istio config records are built
// from the console UI, from the Kiali REST API and from the cluster API, and
// then compared with each other.
//
// Every entity supports a two-tier comparison: the basic check covers the
// identity fields only (namespace, name, type), the advanced check adds the
// derived fields (health, validation, labels, nested children). Advanced
// equality always implies basic equality.
package entity

// Keyer exposes the identity tuple of an entity as a single string, used for
// set semantics when de-duplicating filtered results.
type Keyer interface {
	Key() string
}

func labelsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
