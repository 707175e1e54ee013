package entity

// Application is one row of the applications listing.
type Application struct {
	Namespace    string
	Name         string
	IstioSidecar SidecarState
	Health       HealthType
}

func (a *Application) Key() string {
	return a.Namespace + "/" + a.Name
}

// IsEqual compares two applications. The basic check covers namespace and
// name only; the advanced check adds sidecar presence and health.
func (a *Application) IsEqual(other *Application, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if a.Namespace != other.Namespace || a.Name != other.Name {
		return false
	}
	if advancedCheck {
		if a.IstioSidecar != other.IstioSidecar {
			return false
		}
		if a.Health != other.Health {
			return false
		}
	}
	return true
}

// ApplicationDetails is the application detail view.
type ApplicationDetails struct {
	Namespace    string
	Name         string
	IstioSidecar SidecarState
	Health       HealthType
	Workloads    []AppWorkload
	Services     []string
}

func (a *ApplicationDetails) Key() string {
	return a.Namespace + "/" + a.Name
}

func (a *ApplicationDetails) IsEqual(other *ApplicationDetails, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if a.Name != other.Name {
		return false
	}
	if !advancedCheck {
		return true
	}
	if a.IstioSidecar != other.IstioSidecar || a.Health != other.Health {
		return false
	}
	if len(a.Workloads) != len(other.Workloads) {
		return false
	}
	for i := range a.Workloads {
		if a.Workloads[i] != other.Workloads[i] {
			return false
		}
	}
	return stringsEqual(a.Services, other.Services)
}

// AppWorkload is one workload row of the application detail view.
type AppWorkload struct {
	Name         string
	IstioSidecar SidecarState
}
