package openshift

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/kiali/kiali-qe-go/pkg/entity"
)

// Closed mapping from workload kind to the resource that backs it. The
// listing queries walk this table instead of dispatching by attribute name,
// so an unmapped kind cannot slip through silently.
var workloadResources = map[entity.WorkloadType]schema.GroupVersionResource{
	entity.WorkloadCronJob:               {Group: "batch", Version: "v1beta1", Resource: "cronjobs"},
	entity.WorkloadDaemonSet:             {Group: "apps", Version: "v1", Resource: "daemonsets"},
	entity.WorkloadDeployment:            {Group: "apps", Version: "v1", Resource: "deployments"},
	entity.WorkloadDeploymentConfig:      {Group: "apps.openshift.io", Version: "v1", Resource: "deploymentconfigs"},
	entity.WorkloadJob:                   {Group: "batch", Version: "v1", Resource: "jobs"},
	entity.WorkloadPodType:               {Group: "", Version: "v1", Resource: "pods"},
	entity.WorkloadReplicaSet:            {Group: "apps", Version: "v1", Resource: "replicasets"},
	entity.WorkloadReplicationController: {Group: "", Version: "v1", Resource: "replicationcontrollers"},
	entity.WorkloadStatefulSet:           {Group: "apps", Version: "v1", Resource: "statefulsets"},
}

const (
	istioNetworkingGroup = "networking.istio.io"
	istioConfigGroup     = "config.istio.io"
)

// istioResource binds one Istio or Mixer resource to the object type its
// entries are listed under. Adapter and Template resources set composite:
// their entries encode the resource kind as an object type sub-kind.
type istioResource struct {
	objectType entity.ObjectType
	composite  bool
	gvr        schema.GroupVersionResource
}

// istioResources lists every config resource in the order the console's
// Istio config page presents the categories.
var istioResources = []istioResource{
	{objectType: entity.ObjectGateway, gvr: schema.GroupVersionResource{Group: istioNetworkingGroup, Version: "v1alpha3", Resource: "gateways"}},
	{objectType: entity.ObjectVirtualService, gvr: schema.GroupVersionResource{Group: istioNetworkingGroup, Version: "v1alpha3", Resource: "virtualservices"}},
	{objectType: entity.ObjectDestinationRule, gvr: schema.GroupVersionResource{Group: istioNetworkingGroup, Version: "v1alpha3", Resource: "destinationrules"}},
	{objectType: entity.ObjectServiceEntry, gvr: schema.GroupVersionResource{Group: istioNetworkingGroup, Version: "v1alpha3", Resource: "serviceentries"}},
	{objectType: entity.ObjectRule, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "rules"}},
	{objectType: entity.ObjectAdapter, composite: true, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "kubernetesenvs"}},
	{objectType: entity.ObjectAdapter, composite: true, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "prometheuses"}},
	{objectType: entity.ObjectAdapter, composite: true, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "stdios"}},
	{objectType: entity.ObjectTemplate, composite: true, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "logentries"}},
	{objectType: entity.ObjectTemplate, composite: true, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "kuberneteses"}},
	{objectType: entity.ObjectTemplate, composite: true, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "metrics"}},
	{objectType: entity.ObjectQuotaSpec, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "quotaspecs"}},
	{objectType: entity.ObjectQuotaSpecBinding, gvr: schema.GroupVersionResource{Group: istioConfigGroup, Version: "v1alpha2", Resource: "quotaspecbindings"}},
}

// istioResourceFor resolves the resource for a (kind, apiVersion) pair as
// the CRUD fixtures specify them. apiVersion may be bare ("v1alpha3") or
// carry its group; bare versions resolve to the networking group for
// v1alpha3 and the Mixer config group otherwise.
func istioResourceFor(kind, apiVersion string) schema.GroupVersionResource {
	group := ""
	version := apiVersion
	if strings.Contains(apiVersion, "/") {
		gv, err := schema.ParseGroupVersion(apiVersion)
		if err == nil {
			group, version = gv.Group, gv.Version
		}
	}
	if group == "" {
		if version == "v1alpha3" {
			group = istioNetworkingGroup
		} else {
			group = istioConfigGroup
		}
	}
	return schema.GroupVersionResource{Group: group, Version: version, Resource: pluralOf(kind)}
}

// pluralOf derives the resource name of a kind the way the CRD registrations
// of that era named them (rule -> rules, logentry -> logentries,
// prometheus -> prometheuses).
func pluralOf(kind string) string {
	lower := strings.ToLower(kind)
	switch {
	case strings.HasSuffix(lower, "s"):
		return lower + "es"
	case strings.HasSuffix(lower, "y"):
		return strings.TrimSuffix(lower, "y") + "ies"
	default:
		return lower + "s"
	}
}

func describeGVR(gvr schema.GroupVersionResource) string {
	if gvr.Group == "" {
		return fmt.Sprintf("%s/%s", gvr.Version, gvr.Resource)
	}
	return fmt.Sprintf("%s/%s/%s", gvr.Group, gvr.Version, gvr.Resource)
}
