package entity

// Service is one row of the services listing.
type Service struct {
	Namespace    string
	Name         string
	IstioSidecar SidecarState
	Health       HealthType
}

func (s *Service) Key() string {
	return s.Namespace + "/" + s.Name
}

// IsEqual compares two services. The basic check covers namespace and name
// only; the advanced check adds sidecar presence and health.
func (s *Service) IsEqual(other *Service, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if s.Namespace != other.Namespace || s.Name != other.Name {
		return false
	}
	if advancedCheck {
		if s.IstioSidecar != other.IstioSidecar {
			return false
		}
		if s.Health != other.Health {
			return false
		}
	}
	return true
}

// ServiceDetails is the service detail view. When embedded in a workload's
// detail view only the identity, port and label fields are populated.
type ServiceDetails struct {
	Namespace       string
	Name            string
	IstioSidecar    SidecarState
	CreatedAt       string
	ResourceVersion string
	ServiceType     string
	IP              string
	Ports           string
	Labels          map[string]string
	Health          HealthType
	Workloads       []WorkloadDetails
	SourceWorkloads []SourceWorkload
	VirtualServices []VirtualService
	DestinationRules []DestinationRule
}

func (s *ServiceDetails) Key() string {
	return s.Namespace + "/" + s.Name
}

func (s *ServiceDetails) IsEqual(other *ServiceDetails, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if s.Name != other.Name || s.ServiceType != other.ServiceType {
		return false
	}
	if s.Ports != other.Ports {
		return false
	}
	if !advancedCheck {
		return true
	}
	if s.IstioSidecar != other.IstioSidecar || s.Health != other.Health {
		return false
	}
	if !labelsEqual(s.Labels, other.Labels) {
		return false
	}
	if len(s.Workloads) != len(other.Workloads) ||
		len(s.SourceWorkloads) != len(other.SourceWorkloads) ||
		len(s.VirtualServices) != len(other.VirtualServices) ||
		len(s.DestinationRules) != len(other.DestinationRules) {
		return false
	}
	return true
}

// SourceWorkload names the workloads a service depends on for one target.
type SourceWorkload struct {
	To        string
	Workloads []string
}

func (s *SourceWorkload) IsEqual(other *SourceWorkload) bool {
	return other != nil && s.To == other.To && stringsEqual(s.Workloads, other.Workloads)
}

// VirtualService is a virtual service attached to a service detail view.
type VirtualService struct {
	Name            string
	CreatedAt       string
	ResourceVersion string
	Status          ConfigValidation
	Hosts           []string
	Weights         []VirtualServiceWeight
}

func (v *VirtualService) IsEqual(other *VirtualService, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if v.Name != other.Name {
		return false
	}
	if !advancedCheck {
		return true
	}
	if v.Status != other.Status || !stringsEqual(v.Hosts, other.Hosts) {
		return false
	}
	if len(v.Weights) != len(other.Weights) {
		return false
	}
	for i := range v.Weights {
		if !v.Weights[i].IsEqual(&other.Weights[i]) {
			return false
		}
	}
	return true
}

// VirtualServiceWeight is one weighted route destination. Optional fields are
// pointers: the UI omits them entirely, and a route weight of 0 is rendered
// as absent rather than as the number 0.
type VirtualServiceWeight struct {
	Host   string
	Subset *string
	Port   *int
	Status *string
	Weight *int
}

func (w *VirtualServiceWeight) IsEqual(other *VirtualServiceWeight) bool {
	if other == nil {
		return false
	}
	return w.Host == other.Host &&
		optStringEqual(w.Subset, other.Subset) &&
		optIntEqual(w.Port, other.Port) &&
		optStringEqual(w.Status, other.Status) &&
		optIntEqual(w.Weight, other.Weight)
}

// DestinationRule is a destination rule attached to a service detail view.
// TrafficPolicy and Subsets carry the linearized strings the UI renders.
type DestinationRule struct {
	Name            string
	Host            string
	TrafficPolicy   string
	Subsets         string
	CreatedAt       string
	ResourceVersion string
	Status          ConfigValidation
}

func (d *DestinationRule) IsEqual(other *DestinationRule, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if d.Name != other.Name || d.Host != other.Host {
		return false
	}
	if !advancedCheck {
		return true
	}
	return d.Status == other.Status &&
		d.TrafficPolicy == other.TrafficPolicy &&
		d.Subsets == other.Subsets
}

func optStringEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func optIntEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
