package entity

// Overview is the aggregated per-namespace summary of one entity kind:
// the total item count plus one counter per health bucket. It is derived
// fresh for every query and never persisted.
type Overview struct {
	OverviewType OverviewType
	Namespace    string
	Items        int
	Healthy      int
	Unhealthy    int
	Degraded     int
	NA           int
}

func (o *Overview) Key() string {
	return string(o.OverviewType) + "/" + o.Namespace
}

// IsEqual compares two overviews. The basic check covers type, namespace and
// item count; the advanced check adds the per-bucket counters.
func (o *Overview) IsEqual(other *Overview, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if o.OverviewType != other.OverviewType || o.Namespace != other.Namespace {
		return false
	}
	if o.Items != other.Items {
		return false
	}
	if advancedCheck {
		if o.Healthy != other.Healthy || o.Unhealthy != other.Unhealthy {
			return false
		}
		if o.Degraded != other.Degraded || o.NA != other.NA {
			return false
		}
	}
	return true
}

// CountHealth increments the bucket matching the given health value.
// Anything outside the three recognized buckets counts as N/A, so every item
// increments exactly one counter.
func (o *Overview) CountHealth(health HealthType) {
	o.Items++
	switch health {
	case HealthHealthy:
		o.Healthy++
	case HealthFailure:
		o.Unhealthy++
	case HealthDegraded:
		o.Degraded++
	default:
		o.NA++
	}
}
