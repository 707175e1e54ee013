package kiali

import (
	"encoding/json"

	"github.com/kiali/kiali-qe-go/pkg/entity"
)

// Raw document schemas for the Kiali API responses. Each response shape is
// decoded exactly once at the transport boundary; everything past this file
// works on these structs, never on free-form maps. Optional substructure
// (labels, dependencies, nested lists) stays nil when absent and is treated
// as empty by the normalizer.

type namespaceItem struct {
	Name string `json:"name"`
}

type serviceListDoc struct {
	Services []serviceListItem `json:"services"`
}

type serviceListItem struct {
	Name         string `json:"name"`
	IstioSidecar bool   `json:"istioSidecar"`
}

type workloadListDoc struct {
	Workloads []workloadListItem `json:"workloads"`
}

type workloadListItem struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	IstioSidecar bool              `json:"istioSidecar"`
	Labels       map[string]string `json:"labels"`
}

type appListDoc struct {
	Applications []appListItem `json:"applications"`
}

type appListItem struct {
	Name         string `json:"name"`
	IstioSidecar bool   `json:"istioSidecar"`
}

// istioConfigDoc is the fixed-shape envelope of the per-namespace Istio
// config listing: one key per config category. Mixer rules, adapters and
// templates are flat arrays; the networking categories wrap their items.
type istioConfigDoc struct {
	DestinationRules  wrappedConfigItems `json:"destinationRules"`
	VirtualServices   wrappedConfigItems `json:"virtualServices"`
	Rules             []mixerConfigItem  `json:"rules"`
	Adapters          []mixerConfigItem  `json:"adapters"`
	Templates         []mixerConfigItem  `json:"templates"`
	QuotaSpecs        []configItem       `json:"quotaSpecs"`
	QuotaSpecBindings []configItem       `json:"quotaSpecBindings"`
	Gateways          []configItem       `json:"gateways"`
	ServiceEntries    []configItem       `json:"serviceEntries"`
}

type wrappedConfigItems struct {
	Items []configItem `json:"items"`
}

type configItem struct {
	Metadata configMetadata  `json:"metadata"`
	Spec     json.RawMessage `json:"spec"`
}

type configMetadata struct {
	Name              string `json:"name"`
	Namespace         string `json:"namespace"`
	CreationTimestamp string `json:"creationTimestamp"`
	ResourceVersion   string `json:"resourceVersion"`
}

type mixerConfigItem struct {
	Metadata configMetadata `json:"metadata"`
	// Adapter and Template carry the sub-kind of Mixer adapter and
	// template entries ("prometheus", "metric", ...).
	Adapter  string `json:"adapter"`
	Template string `json:"template"`
}

// istioConfigDetailsDoc is the config detail document: exactly one category
// pointer is populated, matching the requested object type.
type istioConfigDetailsDoc struct {
	ObjectType       string          `json:"objectType"`
	DestinationRule  json.RawMessage `json:"destinationRule"`
	Rule             json.RawMessage `json:"rule"`
	VirtualService   json.RawMessage `json:"virtualService"`
	QuotaSpec        json.RawMessage `json:"quotaSpec"`
	QuotaSpecBinding json.RawMessage `json:"quotaSpecBinding"`
	Gateway          json.RawMessage `json:"gateway"`
	ServiceEntry     json.RawMessage `json:"serviceEntry"`
	Validation       *validationDoc  `json:"validation"`
}

type validationDoc struct {
	Checks []entity.Check `json:"checks"`
}

type serviceDetailsDoc struct {
	Service          serviceDoc                  `json:"service"`
	Workloads        []detailWorkloadItem        `json:"workloads"`
	Dependencies     map[string][]dependencyItem `json:"dependencies"`
	VirtualServices  wrappedConfigItems          `json:"virtualServices"`
	DestinationRules wrappedDestinationRules     `json:"destinationRules"`
}

type serviceDoc struct {
	Name            string            `json:"name"`
	CreatedAt       string            `json:"createdAt"`
	ResourceVersion string            `json:"resourceVersion"`
	Type            string            `json:"type"`
	IP              string            `json:"ip"`
	Ports           []servicePort     `json:"ports"`
	Labels          map[string]string `json:"labels"`
	IstioSidecar    bool              `json:"istioSidecar"`
}

type servicePort struct {
	Name     string `json:"name"`
	Protocol string `json:"protocol"`
	Port     int    `json:"port"`
}

type detailWorkloadItem struct {
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	CreatedAt       string            `json:"createdAt"`
	ResourceVersion string            `json:"resourceVersion"`
	Labels          map[string]string `json:"labels"`
}

type dependencyItem struct {
	Name string `json:"name"`
}

type wrappedDestinationRules struct {
	Items []destinationRuleItem `json:"items"`
}

type destinationRuleItem struct {
	Metadata configMetadata      `json:"metadata"`
	Spec     destinationRuleSpec `json:"spec"`
}

type destinationRuleSpec struct {
	Host          string          `json:"host"`
	TrafficPolicy json.RawMessage `json:"trafficPolicy"`
	Subsets       []subsetItem    `json:"subsets"`
}

type subsetItem struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels"`
}

type virtualServiceItem struct {
	Metadata configMetadata     `json:"metadata"`
	Spec     virtualServiceSpec `json:"spec"`
}

type virtualServiceSpec struct {
	Hosts []string    `json:"hosts"`
	HTTP  []httpRoute `json:"http"`
}

type httpRoute struct {
	Route []routeDestination `json:"route"`
}

type routeDestination struct {
	Destination routeDestinationTarget `json:"destination"`
	Weight      int                    `json:"weight"`
}

type routeDestinationTarget struct {
	Host   string     `json:"host"`
	Subset *string    `json:"subset"`
	Port   *routePort `json:"port"`
	Status *string    `json:"status"`
}

type routePort struct {
	Number int `json:"number"`
}

type workloadDetailsDoc struct {
	Name                string               `json:"name"`
	Type                string               `json:"type"`
	CreatedAt           string               `json:"createdAt"`
	ResourceVersion     string               `json:"resourceVersion"`
	IstioSidecar        bool                 `json:"istioSidecar"`
	Labels              map[string]string    `json:"labels"`
	Services            []workloadServiceDoc `json:"services"`
	DestinationServices []destinationService `json:"destinationServices"`
	Pods                []podDoc             `json:"pods"`
}

type workloadServiceDoc struct {
	Name            string            `json:"name"`
	CreatedAt       string            `json:"createdAt"`
	ResourceVersion string            `json:"resourceVersion"`
	Type            string            `json:"type"`
	IP              string            `json:"ip"`
	Ports           []servicePort     `json:"ports"`
	Labels          map[string]string `json:"labels"`
}

type destinationService struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

type podDoc struct {
	Name                string            `json:"name"`
	CreatedAt           string            `json:"createdAt"`
	CreatedBy           []podCreator      `json:"createdBy"`
	Labels              map[string]string `json:"labels"`
	IstioInitContainers []podContainer    `json:"istioInitContainers"`
	IstioContainers     []podContainer    `json:"istioContainers"`
	Status              string            `json:"status"`
	AppLabel            bool              `json:"appLabel"`
	VersionLabel        bool              `json:"versionLabel"`
}

type podCreator struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type podContainer struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type appDetailsDoc struct {
	Name         string           `json:"name"`
	IstioSidecar bool             `json:"istioSidecar"`
	Workloads    []appWorkloadDoc `json:"workloads"`
	ServiceNames []string         `json:"serviceNames"`
}

type appWorkloadDoc struct {
	WorkloadName string `json:"workloadName"`
	IstioSidecar bool   `json:"istioSidecar"`
}

// healthDoc is the per-item health document. Service health carries only
// request rates; app and workload health add replica statuses.
type healthDoc struct {
	Requests         requestHealth    `json:"requests"`
	WorkloadStatuses []workloadStatus `json:"workloadStatuses"`
	WorkloadStatus   *workloadStatus  `json:"workloadStatus"`
}

type requestHealth struct {
	Inbound  map[string]map[string]float64 `json:"inbound"`
	Outbound map[string]map[string]float64 `json:"outbound"`
}

type workloadStatus struct {
	Name              string `json:"name"`
	DesiredReplicas   int32  `json:"desiredReplicas"`
	CurrentReplicas   int32  `json:"currentReplicas"`
	AvailableReplicas int32  `json:"availableReplicas"`
}
