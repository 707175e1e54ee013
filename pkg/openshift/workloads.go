package openshift

import (
	"context"
	"regexp"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/klog/v2"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
)

// sidecarStatusAnnotation is set on pod templates by the Istio injector.
const sidecarStatusAnnotation = "sidecar.istio.io/status"

// versionSuffix strips version and pod-template suffixes off a workload name
// when no app label is present ("reviews-v2" -> "reviews").
var versionSuffix = regexp.MustCompile(`(-v\d+-.*)?(-v\d+$)?(-(\w{0,7}\d+\w{0,7})$)?`)

// workloadInfo is the raw cluster-side view of one workload, before it is
// shaped into a Workload or reduced into an Application.
type workloadInfo struct {
	namespace    string
	name         string
	workloadType entity.WorkloadType
	istioSidecar bool
	labels       map[string]string
}

// WorkloadList returns the workloads of the given namespaces across all nine
// workload kinds, the whole cluster when none are given. Kinds whose API is
// not served by the cluster are skipped. Health stays N/A: the cluster API
// computes none.
func (c *Client) WorkloadList(ctx context.Context, namespaces []string, workloadNames ...string) ([]*entity.Workload, error) {
	infos, err := c.workloadInfos(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	items := make([]*entity.Workload, 0, len(infos))
	for _, info := range infos {
		_, appLabel := info.labels["app"]
		_, versionLabel := info.labels["version"]
		items = append(items, &entity.Workload{
			Namespace:    info.namespace,
			Name:         info.name,
			WorkloadType: info.workloadType,
			IstioSidecar: entity.SidecarFromBool(info.istioSidecar),
			AppLabel:     appLabel,
			VersionLabel: versionLabel,
			Health:       entity.HealthNA,
		})
	}
	return filter.ByName(items, workloadNames, func(w *entity.Workload) string { return w.Name }), nil
}

// ApplicationList derives the applications of the given namespaces from the
// workload listing, the way the console groups workloads into apps: by app
// label when present, otherwise by the workload name with its version
// suffix stripped. Duplicates collapse on (namespace, name).
func (c *Client) ApplicationList(ctx context.Context, namespaces []string, applicationNames ...string) ([]*entity.Application, error) {
	infos, err := c.workloadInfos(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(infos))
	var items []*entity.Application
	for _, info := range infos {
		name := info.labels["app"]
		if name == "" {
			name = versionSuffix.ReplaceAllString(info.name, "")
		}
		app := &entity.Application{
			Namespace:    info.namespace,
			Name:         name,
			IstioSidecar: entity.SidecarUnknown,
			Health:       entity.HealthNA,
		}
		if _, dup := seen[app.Key()]; dup {
			continue
		}
		seen[app.Key()] = struct{}{}
		items = append(items, app)
	}
	return filter.ByName(items, applicationNames, func(a *entity.Application) string { return a.Name }), nil
}

func (c *Client) workloadInfos(ctx context.Context, namespaces []string) ([]workloadInfo, error) {
	var infos []workloadInfo
	for _, workloadType := range entity.WorkloadTypes {
		gvr := workloadResources[workloadType]
		raw, err := c.listResource(ctx, gvr, namespaces)
		if err != nil {
			return nil, err
		}
		for _, item := range raw {
			infos = append(infos, workloadInfo{
				namespace:    item.GetNamespace(),
				name:         item.GetName(),
				workloadType: workloadType,
				istioSidecar: hasSidecarAnnotation(&item),
				labels:       item.GetLabels(),
			})
		}
	}
	return infos, nil
}

// listResource lists one resource across the namespace scope. A resource
// whose API the cluster does not serve yields no items instead of failing
// the whole multi-kind listing.
func (c *Client) listResource(ctx context.Context, gvr schema.GroupVersionResource, namespaces []string) ([]unstructured.Unstructured, error) {
	scope := namespaces
	if len(scope) == 0 {
		scope = []string{metav1.NamespaceAll}
	}
	var items []unstructured.Unstructured
	for _, namespace := range scope {
		list, err := c.dynamic.Resource(gvr).Namespace(namespace).List(ctx, metav1.ListOptions{})
		if apierrors.IsNotFound(err) || meta.IsNoMatchError(err) {
			klog.V(3).Infof("resource %s not served by the cluster, skipping", describeGVR(gvr))
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, list.Items...)
	}
	return items, nil
}

func hasSidecarAnnotation(item *unstructured.Unstructured) bool {
	annotations, found, err := unstructured.NestedStringMap(item.Object, "spec", "template", "metadata", "annotations")
	if err != nil || !found {
		return false
	}
	_, ok := annotations[sidecarStatusAnnotation]
	return ok
}
