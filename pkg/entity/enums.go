package entity

import "fmt"

// The enum texts mirror the strings rendered by the console UI so that values
// scraped from the page can be compared verbatim with values derived from the
// REST and cluster APIs. An upstream value with no mapping is a hard error:
// silently coercing it to a default would mask exactly the regressions this
// suite exists to catch.

// HealthType is the derived health status of a service, workload or app.
type HealthType string

const (
	HealthNA       HealthType = "N/A"
	HealthHealthy  HealthType = "Healthy"
	HealthFailure  HealthType = "Failure"
	HealthDegraded HealthType = "Degraded"
)

func ParseHealthType(text string) (HealthType, error) {
	switch HealthType(text) {
	case HealthNA, HealthHealthy, HealthFailure, HealthDegraded:
		return HealthType(text), nil
	}
	return "", fmt.Errorf("unknown health type %q", text)
}

// ConfigValidation is the validation verdict of an Istio config object.
type ConfigValidation string

const (
	ValidationNA       ConfigValidation = "N/A"
	ValidationValid    ConfigValidation = "Valid"
	ValidationWarning  ConfigValidation = "Warning"
	ValidationNotValid ConfigValidation = "Not Valid"
)

func ParseConfigValidation(text string) (ConfigValidation, error) {
	switch ConfigValidation(text) {
	case ValidationNA, ValidationValid, ValidationWarning, ValidationNotValid:
		return ConfigValidation(text), nil
	}
	return "", fmt.Errorf("unknown config validation %q", text)
}

// SidecarState tracks the presence of the injected Istio sidecar proxy.
// The cluster API cannot always determine it, hence the unknown state.
type SidecarState string

const (
	SidecarPresent    SidecarState = "Present"
	SidecarNotPresent SidecarState = "Not Present"
	SidecarUnknown    SidecarState = "Unknown"
)

// SidecarFromBool maps the REST API's boolean istioSidecar flag.
func SidecarFromBool(present bool) SidecarState {
	if present {
		return SidecarPresent
	}
	return SidecarNotPresent
}

// WorkloadType is the controller kind backing a workload.
type WorkloadType string

const (
	WorkloadCronJob               WorkloadType = "CronJob"
	WorkloadDaemonSet             WorkloadType = "DaemonSet"
	WorkloadDeployment            WorkloadType = "Deployment"
	WorkloadDeploymentConfig      WorkloadType = "DeploymentConfig"
	WorkloadJob                   WorkloadType = "Job"
	WorkloadPodType               WorkloadType = "Pod"
	WorkloadReplicaSet            WorkloadType = "ReplicaSet"
	WorkloadReplicationController WorkloadType = "ReplicationController"
	WorkloadStatefulSet           WorkloadType = "StatefulSet"
)

// WorkloadTypes lists all workload kinds in the order the cluster API is
// queried for them.
var WorkloadTypes = []WorkloadType{
	WorkloadCronJob,
	WorkloadDaemonSet,
	WorkloadDeployment,
	WorkloadDeploymentConfig,
	WorkloadJob,
	WorkloadPodType,
	WorkloadReplicaSet,
	WorkloadReplicationController,
	WorkloadStatefulSet,
}

func ParseWorkloadType(text string) (WorkloadType, error) {
	for _, t := range WorkloadTypes {
		if WorkloadType(text) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown workload type %q", text)
}

// ObjectType is the kind of an Istio config object. Adapter and Template
// entries additionally carry their sub-kind, encoded in the object type
// string itself ("Adapter: prometheus"); downstream type filters match
// against that composite string.
type ObjectType string

const (
	ObjectDestinationRule   ObjectType = "DestinationRule"
	ObjectRule              ObjectType = "Rule"
	ObjectAdapter           ObjectType = "Adapter"
	ObjectTemplate          ObjectType = "Template"
	ObjectVirtualService    ObjectType = "VirtualService"
	ObjectGateway           ObjectType = "Gateway"
	ObjectServiceEntry      ObjectType = "ServiceEntry"
	ObjectQuotaSpec         ObjectType = "QuotaSpec"
	ObjectQuotaSpecBinding  ObjectType = "QuotaSpecBinding"
	ObjectPolicy            ObjectType = "Policy"
	ObjectMeshPolicy        ObjectType = "MeshPolicy"
	ObjectClusterRbacConfig ObjectType = "ClusterRbacConfig"
	ObjectRbacConfig        ObjectType = "RbacConfig"
	ObjectServiceRole       ObjectType = "ServiceRole"
	ObjectServiceRoleBind   ObjectType = "ServiceRoleBinding"
)

// WithSubKind returns the composite object type for Adapter and Template
// entries, e.g. ObjectAdapter.WithSubKind("prometheus") == "Adapter: prometheus".
func (t ObjectType) WithSubKind(subKind string) ObjectType {
	return ObjectType(fmt.Sprintf("%s: %s", string(t), subKind))
}

// OverviewType selects which entity kind an overview summarizes.
type OverviewType string

const (
	OverviewApps      OverviewType = "Apps"
	OverviewServices  OverviewType = "Services"
	OverviewWorkloads OverviewType = "Workloads"
)

func ParseOverviewType(text string) (OverviewType, error) {
	switch OverviewType(text) {
	case OverviewApps, OverviewServices, OverviewWorkloads:
		return OverviewType(text), nil
	}
	return "", fmt.Errorf("unknown overview type: %q", text)
}
