package openshift

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
)

// ServiceList returns the services of the given namespaces, the whole
// cluster when none are given. The cluster API cannot tell whether a sidecar
// serves the service and computes no health, so those fields stay unknown
// and N/A; the basic entity check still reconciles against the console.
func (c *Client) ServiceList(ctx context.Context, namespaces []string, serviceNames ...string) ([]*entity.Service, error) {
	var raw []corev1.Service
	if len(namespaces) == 0 {
		list, err := c.kube.CoreV1().Services(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, err
		}
		raw = list.Items
	} else {
		for _, namespace := range namespaces {
			list, err := c.kube.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
			if err != nil {
				return nil, err
			}
			raw = append(raw, list.Items...)
		}
	}
	items := make([]*entity.Service, 0, len(raw))
	for _, item := range raw {
		items = append(items, &entity.Service{
			Namespace:    item.Namespace,
			Name:         item.Name,
			IstioSidecar: entity.SidecarUnknown,
			Health:       entity.HealthNA,
		})
	}
	return filter.ByName(items, serviceNames, func(s *entity.Service) string { return s.Name }), nil
}
