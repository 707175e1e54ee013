package cmd

import (
	"context"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
	"github.com/kiali/kiali-qe-go/pkg/kiali"
	"github.com/kiali/kiali-qe-go/pkg/openshift"
)

// KindReport holds the reconciliation result for one entity kind: the keys
// the console reports but the cluster does not, and the other way around.
type KindReport struct {
	ConsoleOnly []string `json:"consoleOnly,omitempty"`
	ClusterOnly []string `json:"clusterOnly,omitempty"`
}

func (r KindReport) clean() bool {
	return len(r.ConsoleOnly) == 0 && len(r.ClusterOnly) == 0
}

// Report is the full reconciliation result across entity kinds.
type Report struct {
	Services     KindReport `json:"services"`
	Workloads    KindReport `json:"workloads"`
	Applications KindReport `json:"applications"`
	IstioConfig  KindReport `json:"istioConfig"`
}

// Clean reports whether console and cluster listings agreed for every kind.
func (r *Report) Clean() bool {
	return r.Services.clean() && r.Workloads.clean() && r.Applications.clean() && r.IstioConfig.clean()
}

// reconcile lists services, workloads, applications and Istio config from the
// console API and the cluster API and diffs them by identity key. The cluster
// cannot report sidecar, health or validation, so only the basic identity is
// compared.
func reconcile(ctx context.Context, console *kiali.Kiali, cluster *openshift.Client, namespaces []string) (*Report, error) {
	report := &Report{}

	consoleServices, err := console.ServiceList(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	clusterServices, err := cluster.ServiceList(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	report.Services = diffKeys(keysOf(consoleServices), keysOf(clusterServices))

	consoleWorkloads, err := console.WorkloadList(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	clusterWorkloads, err := cluster.WorkloadList(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	report.Workloads = diffKeys(keysOf(consoleWorkloads), keysOf(clusterWorkloads))

	consoleApps, err := console.ApplicationList(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	clusterApps, err := cluster.ApplicationList(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	report.Applications = diffKeys(keysOf(consoleApps), keysOf(clusterApps))

	var filters []filter.Filter
	for _, namespace := range namespaces {
		filters = append(filters, filter.Filter{Name: filter.Namespace, Value: namespace})
	}
	consoleConfigs, err := console.IstioConfigList(ctx, filters)
	if err != nil {
		return nil, err
	}
	clusterConfigs, err := cluster.IstioConfigList(ctx, filters)
	if err != nil {
		return nil, err
	}
	report.IstioConfig = diffKeys(keysOf(consoleConfigs), keysOf(clusterConfigs))

	return report, nil
}

func diffKeys(console, cluster []string) KindReport {
	return KindReport{
		ConsoleOnly: missingFrom(console, cluster),
		ClusterOnly: missingFrom(cluster, console),
	}
}

// missingFrom returns the keys of want that have no counterpart in have,
// preserving want's order.
func missingFrom(want, have []string) []string {
	present := make(map[string]struct{}, len(have))
	for _, key := range have {
		present[key] = struct{}{}
	}
	var missing []string
	for _, key := range want {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func keysOf[T entity.Keyer](items []T) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key())
	}
	return keys
}
