package openshift

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
)

// IstioConfigList returns the Istio config objects of the namespaces named by
// the filters, the whole cluster when no namespace filter is given. Validation
// stays N/A: the cluster API stores the objects but never analyzes them.
func (c *Client) IstioConfigList(ctx context.Context, filters []filter.Filter) ([]*entity.IstioConfig, error) {
	namespaces := filter.Values(filters, filter.Namespace)
	var items []*entity.IstioConfig
	for _, resource := range istioResources {
		raw, err := c.listResource(ctx, resource.gvr, namespaces)
		if err != nil {
			return nil, err
		}
		for _, item := range raw {
			objectType := resource.objectType
			if resource.composite {
				objectType = objectType.WithSubKind(item.GetKind())
			}
			items = append(items, &entity.IstioConfig{
				Namespace:  item.GetNamespace(),
				Name:       item.GetName(),
				ObjectType: objectType,
				Validation: entity.ValidationNA,
			})
		}
	}
	remaining := make([]filter.Filter, 0, len(filters))
	for _, f := range filters {
		if f.Name != filter.Namespace {
			remaining = append(remaining, f)
		}
	}
	return filter.Apply(items, remaining, filter.MatchIstioConfig), nil
}

// CreateIstioConfig applies a config object given as YAML or JSON text, the
// form the CRUD scenario fixtures carry it in.
func (c *Client) CreateIstioConfig(ctx context.Context, namespace, text string) error {
	obj := &unstructured.Unstructured{}
	if err := yaml.Unmarshal([]byte(text), &obj.Object); err != nil {
		return fmt.Errorf("failed to parse istio config: %w", err)
	}
	if obj.GetKind() == "" || obj.GetAPIVersion() == "" {
		return fmt.Errorf("istio config is missing kind or apiVersion")
	}
	gvr := istioResourceFor(obj.GetKind(), obj.GetAPIVersion())
	klog.V(2).Infof("creating %s %s/%s", describeGVR(gvr), namespace, obj.GetName())
	_, err := c.dynamic.Resource(gvr).Namespace(namespace).Create(ctx, obj, metav1.CreateOptions{})
	return err
}

// DeleteIstioConfig removes a config object by kind, apiVersion and name.
// Deleting an object that is already gone is not an error: scenario teardown
// runs unconditionally.
func (c *Client) DeleteIstioConfig(ctx context.Context, namespace, kind, apiVersion, name string) error {
	gvr := istioResourceFor(kind, apiVersion)
	klog.V(2).Infof("deleting %s %s/%s", describeGVR(gvr), namespace, name)
	err := c.dynamic.Resource(gvr).Namespace(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if apierrors.IsNotFound(err) {
		return nil
	}
	return err
}
