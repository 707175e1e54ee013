package openshift

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	kubefake "k8s.io/client-go/kubernetes/fake"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
)

// listKinds registers a list kind for every resource the client walks, so the
// fake dynamic client accepts List calls on all of them.
func listKinds() map[schema.GroupVersionResource]string {
	kinds := map[schema.GroupVersionResource]string{
		workloadResources[entity.WorkloadCronJob]:               "CronJobList",
		workloadResources[entity.WorkloadDaemonSet]:             "DaemonSetList",
		workloadResources[entity.WorkloadDeployment]:            "DeploymentList",
		workloadResources[entity.WorkloadDeploymentConfig]:      "DeploymentConfigList",
		workloadResources[entity.WorkloadJob]:                   "JobList",
		workloadResources[entity.WorkloadPodType]:               "PodList",
		workloadResources[entity.WorkloadReplicaSet]:            "ReplicaSetList",
		workloadResources[entity.WorkloadReplicationController]: "ReplicationControllerList",
		workloadResources[entity.WorkloadStatefulSet]:           "StatefulSetList",
	}
	listKindOf := map[string]string{
		"gateways":          "GatewayList",
		"virtualservices":   "VirtualServiceList",
		"destinationrules":  "DestinationRuleList",
		"serviceentries":    "ServiceEntryList",
		"rules":             "RuleList",
		"kubernetesenvs":    "KubernetesenvList",
		"prometheuses":      "PrometheusList",
		"stdios":            "StdioList",
		"logentries":        "LogentryList",
		"kuberneteses":      "KubernetesList",
		"metrics":           "MetricList",
		"quotaspecs":        "QuotaSpecList",
		"quotaspecbindings": "QuotaSpecBindingList",
	}
	for _, resource := range istioResources {
		kinds[resource.gvr] = listKindOf[resource.gvr.Resource]
	}
	return kinds
}

// workloadObject builds an unstructured controller fixture. Sidecar presence
// is encoded the way the injector leaves it, as a pod template annotation.
func workloadObject(apiVersion, kind, namespace, name string, sidecar bool, labels map[string]any) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": apiVersion,
		"kind":       kind,
		"metadata": map[string]any{
			"namespace": namespace,
			"name":      name,
		},
		"spec": map[string]any{
			"template": map[string]any{
				"metadata": map[string]any{},
			},
		},
	}}
	if len(labels) > 0 {
		obj.Object["metadata"].(map[string]any)["labels"] = labels
	}
	if sidecar {
		template := obj.Object["spec"].(map[string]any)["template"].(map[string]any)
		template["metadata"].(map[string]any)["annotations"] = map[string]any{
			"sidecar.istio.io/status": `{"version":"1"}`,
		}
	}
	return obj
}

func istioObject(apiVersion, kind, namespace, name string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": apiVersion,
		"kind":       kind,
		"metadata": map[string]any{
			"namespace": namespace,
			"name":      name,
		},
	}}
}

type OpenShiftSuite struct {
	suite.Suite
}

func (s *OpenShiftSuite) client(objects ...runtime.Object) *Client {
	kube := kubefake.NewSimpleClientset()
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds(), objects...)
	return NewClientFor(kube, dyn)
}

func (s *OpenShiftSuite) TestNamespaces() {
	kube := kubefake.NewSimpleClientset(
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "bookinfo"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "istio-system"}},
	)
	client := NewClientFor(kube, dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds()))

	s.Run("lists all namespaces", func() {
		names, err := client.NamespaceList(context.Background())
		s.Require().NoError(err, "Expected no error listing namespaces")
		s.ElementsMatch([]string{"bookinfo", "istio-system"}, names, "Unexpected namespaces")
	})
	s.Run("reports existing namespace", func() {
		exists, err := client.NamespaceExists(context.Background(), "bookinfo")
		s.Require().NoError(err, "Expected no error checking namespace")
		s.True(exists, "Expected bookinfo to exist")
	})
	s.Run("reports missing namespace without error", func() {
		exists, err := client.NamespaceExists(context.Background(), "missing")
		s.Require().NoError(err, "Expected no error for missing namespace")
		s.False(exists, "Expected missing namespace to not exist")
	})
}

func (s *OpenShiftSuite) TestServiceList() {
	kube := kubefake.NewSimpleClientset(
		&corev1.Service{ObjectMeta: metav1.ObjectMeta{Namespace: "bookinfo", Name: "reviews"}},
		&corev1.Service{ObjectMeta: metav1.ObjectMeta{Namespace: "bookinfo", Name: "ratings"}},
		&corev1.Service{ObjectMeta: metav1.ObjectMeta{Namespace: "other", Name: "frontend"}},
	)
	client := NewClientFor(kube, dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds()))

	s.Run("scopes to the given namespaces", func() {
		items, err := client.ServiceList(context.Background(), []string{"bookinfo"})
		s.Require().NoError(err, "Expected no error listing services")
		s.Require().Len(items, 2, "Expected two services in bookinfo")
	})
	s.Run("cluster-side fields stay unknown", func() {
		items, err := client.ServiceList(context.Background(), []string{"bookinfo"})
		s.Require().NoError(err, "Expected no error listing services")
		s.Equal(entity.SidecarUnknown, items[0].IstioSidecar, "Expected unknown sidecar state")
		s.Equal(entity.HealthNA, items[0].Health, "Expected N/A health")
	})
	s.Run("empty scope spans the cluster", func() {
		items, err := client.ServiceList(context.Background(), nil)
		s.Require().NoError(err, "Expected no error listing services")
		s.Len(items, 3, "Expected services from every namespace")
	})
	s.Run("name restriction is a substring match", func() {
		items, err := client.ServiceList(context.Background(), []string{"bookinfo"}, "view")
		s.Require().NoError(err, "Expected no error listing services")
		s.Require().Len(items, 1, "Expected one match")
		s.Equal("reviews", items[0].Name, "Unexpected match")
	})
}

func (s *OpenShiftSuite) TestWorkloadList() {
	client := s.client(
		workloadObject("apps/v1", "Deployment", "bookinfo", "reviews-v1", true, map[string]any{"app": "reviews", "version": "v1"}),
		workloadObject("apps/v1", "StatefulSet", "bookinfo", "db", false, map[string]any{"app": "db"}),
		workloadObject("apps.openshift.io/v1", "DeploymentConfig", "legacy", "frontend", false, nil),
	)

	items, err := client.WorkloadList(context.Background(), nil)
	s.Require().NoError(err, "Expected no error listing workloads")
	s.Require().Len(items, 3, "Expected three workloads")

	byName := make(map[string]*entity.Workload, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}

	s.Run("controller kinds map to workload types", func() {
		s.Equal(entity.WorkloadDeployment, byName["reviews-v1"].WorkloadType, "Unexpected deployment type")
		s.Equal(entity.WorkloadStatefulSet, byName["db"].WorkloadType, "Unexpected stateful set type")
		s.Equal(entity.WorkloadDeploymentConfig, byName["frontend"].WorkloadType, "Unexpected deployment config type")
	})
	s.Run("sidecar presence derives from the template annotation", func() {
		s.Equal(entity.SidecarPresent, byName["reviews-v1"].IstioSidecar, "Expected sidecar for annotated template")
		s.Equal(entity.SidecarNotPresent, byName["db"].IstioSidecar, "Expected no sidecar without the annotation")
	})
	s.Run("label flags derive from label presence", func() {
		s.True(byName["reviews-v1"].AppLabel, "Expected app label flag")
		s.True(byName["reviews-v1"].VersionLabel, "Expected version label flag")
		s.False(byName["db"].VersionLabel, "Expected no version label flag")
	})
	s.Run("health stays N/A", func() {
		s.Equal(entity.HealthNA, byName["reviews-v1"].Health, "Expected N/A health from the cluster API")
	})
}

func (s *OpenShiftSuite) TestApplicationList() {
	client := s.client(
		workloadObject("apps/v1", "Deployment", "bookinfo", "reviews-v1", true, map[string]any{"app": "reviews", "version": "v1"}),
		workloadObject("apps/v1", "Deployment", "bookinfo", "reviews-v2", true, map[string]any{"app": "reviews", "version": "v2"}),
		workloadObject("apps/v1", "Deployment", "bookinfo", "standalone-v1", false, nil),
	)

	items, err := client.ApplicationList(context.Background(), []string{"bookinfo"})
	s.Require().NoError(err, "Expected no error listing applications")

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	s.Run("workloads sharing an app label collapse into one application", func() {
		s.ElementsMatch([]string{"reviews", "standalone"}, names, "Unexpected applications")
	})
	s.Run("unlabeled workloads fall back to the stripped name", func() {
		s.Contains(names, "standalone", "Expected version suffix stripped from unlabeled workload")
	})
}

func (s *OpenShiftSuite) TestIstioConfigList() {
	client := s.client(
		istioObject("networking.istio.io/v1alpha3", "Gateway", "bookinfo", "foobar"),
		istioObject("networking.istio.io/v1alpha3", "VirtualService", "bookinfo", "foobar"),
		istioObject("config.istio.io/v1alpha2", "prometheus", "istio-system", "promhttp"),
	)

	s.Run("lists every configured resource kind", func() {
		items, err := client.IstioConfigList(context.Background(), nil)
		s.Require().NoError(err, "Expected no error listing istio config")
		s.Require().Len(items, 3, "Expected three config entries")
	})
	s.Run("adapter entries compose their sub-kind from the object kind", func() {
		items, err := client.IstioConfigList(context.Background(), []filter.Filter{
			{Name: filter.Namespace, Value: "istio-system"},
		})
		s.Require().NoError(err, "Expected no error listing istio config")
		s.Require().Len(items, 1, "Expected one entry in istio-system")
		s.Equal(entity.ObjectAdapter.WithSubKind("prometheus"), items[0].ObjectType, "Unexpected composite type")
		s.Equal(entity.ValidationNA, items[0].Validation, "Expected N/A validation from the cluster API")
	})
	s.Run("name and type filters are ANDed", func() {
		items, err := client.IstioConfigList(context.Background(), []filter.Filter{
			{Name: filter.IstioName, Value: "foobar"},
			{Name: filter.IstioType, Value: "Gateway"},
		})
		s.Require().NoError(err, "Expected no error listing istio config")
		s.Require().Len(items, 1, "Expected only the gateway named foobar")
		s.Equal(entity.ObjectGateway, items[0].ObjectType, "Unexpected surviving entry")
	})
}

func (s *OpenShiftSuite) TestCreateAndDeleteIstioConfig() {
	client := s.client()
	name := "gw-" + uuid.NewString()[:8]
	text := fmt.Sprintf(`
apiVersion: networking.istio.io/v1alpha3
kind: Gateway
metadata:
  name: %s
spec:
  selector:
    istio: ingressgateway
`, name)

	s.Run("created objects appear in the listing", func() {
		s.Require().NoError(client.CreateIstioConfig(context.Background(), "bookinfo", text), "Expected no error creating config")
		items, err := client.IstioConfigList(context.Background(), []filter.Filter{
			{Name: filter.Namespace, Value: "bookinfo"},
		})
		s.Require().NoError(err, "Expected no error listing istio config")
		s.Require().Len(items, 1, "Expected the created gateway")
		s.Equal(name, items[0].Name, "Unexpected created name")
	})
	s.Run("deleted objects disappear from the listing", func() {
		s.Require().NoError(client.DeleteIstioConfig(context.Background(), "bookinfo", "Gateway", "networking.istio.io/v1alpha3", name), "Expected no error deleting config")
		items, err := client.IstioConfigList(context.Background(), []filter.Filter{
			{Name: filter.Namespace, Value: "bookinfo"},
		})
		s.Require().NoError(err, "Expected no error listing istio config")
		s.Empty(items, "Expected no entries after deletion")
	})
	s.Run("deleting an absent object is not an error", func() {
		s.NoError(client.DeleteIstioConfig(context.Background(), "bookinfo", "Gateway", "networking.istio.io/v1alpha3", "already-gone"), "Expected teardown of a missing object to succeed")
	})
	s.Run("text without kind is rejected", func() {
		err := client.CreateIstioConfig(context.Background(), "bookinfo", `{"metadata": {"name": "x"}}`)
		s.Require().Error(err, "Expected error for config without kind")
		s.ErrorContains(err, "missing kind or apiVersion", "Unexpected error message")
	})
}

func TestOpenShift(t *testing.T) {
	suite.Run(t, new(OpenShiftSuite))
}
