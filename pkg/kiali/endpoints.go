package kiali

// Kiali API endpoint paths shared across this package.
const (
	NamespacesEndpoint         = "/api/namespaces"
	ServicesEndpoint           = "/api/namespaces/%s/services"
	ServiceDetailsEndpoint     = "/api/namespaces/%s/services/%s"
	ServiceHealthEndpoint      = "/api/namespaces/%s/services/%s/health"
	WorkloadsEndpoint          = "/api/namespaces/%s/workloads"
	WorkloadDetailsEndpoint    = "/api/namespaces/%s/workloads/%s"
	WorkloadHealthEndpoint     = "/api/namespaces/%s/workloads/%s/health"
	AppsEndpoint               = "/api/namespaces/%s/apps"
	AppDetailsEndpoint         = "/api/namespaces/%s/apps/%s"
	AppHealthEndpoint          = "/api/namespaces/%s/apps/%s/health"
	IstioConfigEndpoint        = "/api/namespaces/%s/istio"
	IstioConfigDetailsEndpoint = "/api/namespaces/%s/istio/%s/%s"
)

// Default values for Kiali API parameters shared across this package.
const (
	// DefaultRateInterval is the rate interval used when fetching error
	// rates for health documents.
	DefaultRateInterval = "10m"
)
