package entity

// Workload is one row of the workloads listing.
type Workload struct {
	Namespace    string
	Name         string
	WorkloadType WorkloadType
	IstioSidecar SidecarState
	AppLabel     bool
	VersionLabel bool
	Health       HealthType
}

func (w *Workload) Key() string {
	return w.Namespace + "/" + w.Name
}

// IsEqual compares two workloads. The basic check covers namespace, name and
// workload type; the advanced check adds sidecar presence, the app/version
// label flags and health.
func (w *Workload) IsEqual(other *Workload, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if w.Namespace != other.Namespace || w.Name != other.Name {
		return false
	}
	if w.WorkloadType != other.WorkloadType {
		return false
	}
	if advancedCheck {
		if w.IstioSidecar != other.IstioSidecar {
			return false
		}
		if w.AppLabel != other.AppLabel || w.VersionLabel != other.VersionLabel {
			return false
		}
		if w.Health != other.Health {
			return false
		}
	}
	return true
}

// WorkloadDetails is the workload detail view. When embedded in a service's
// detail view only the identity, label and timestamp fields are populated.
type WorkloadDetails struct {
	Namespace       string
	Name            string
	WorkloadType    WorkloadType
	IstioSidecar    SidecarState
	CreatedAt       string
	ResourceVersion string
	Health          HealthType
	Labels          map[string]string

	PodsNumber                int
	ServicesNumber            int
	DestinationServicesNumber int
	DestinationServices       []DestinationService
	Pods                      []WorkloadPod
	Services                  []ServiceDetails
}

func (w *WorkloadDetails) Key() string {
	return w.Namespace + "/" + w.Name
}

func (w *WorkloadDetails) IsEqual(other *WorkloadDetails, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if w.Name != other.Name || w.WorkloadType != other.WorkloadType {
		return false
	}
	if !advancedCheck {
		return true
	}
	if w.IstioSidecar != other.IstioSidecar || w.Health != other.Health {
		return false
	}
	if !labelsEqual(w.Labels, other.Labels) {
		return false
	}
	if w.PodsNumber != other.PodsNumber || w.ServicesNumber != other.ServicesNumber {
		return false
	}
	return w.DestinationServicesNumber == other.DestinationServicesNumber
}

// WorkloadPod is one pod row of the workload detail view. After grouping it
// may represent a collapsed set of N replicas; the Name then carries the
// replica count suffix the UI renders.
type WorkloadPod struct {
	Name                string
	CreatedAt           string
	CreatedBy           string
	Labels              map[string]string
	IstioInitContainers string
	IstioContainers     string
	Status              ConfigValidation
	Phase               string
}

func (p *WorkloadPod) Key() string {
	return p.Name
}

func (p *WorkloadPod) IsEqual(other *WorkloadPod, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if p.Name != other.Name {
		return false
	}
	if !advancedCheck {
		return true
	}
	if p.CreatedAt != other.CreatedAt || p.CreatedBy != other.CreatedBy {
		return false
	}
	if !labelsEqual(p.Labels, other.Labels) {
		return false
	}
	if p.IstioInitContainers != other.IstioInitContainers ||
		p.IstioContainers != other.IstioContainers {
		return false
	}
	return p.Status == other.Status && p.Phase == other.Phase
}

// DestinationService is a downstream service a workload sends traffic to.
type DestinationService struct {
	From      string
	Name      string
	Namespace string
}

func (d *DestinationService) IsEqual(other *DestinationService) bool {
	return other != nil && d.From == other.From &&
		d.Name == other.Name && d.Namespace == other.Namespace
}
