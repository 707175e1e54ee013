package kiali

import (
	"context"

	"github.com/kiali/kiali-qe-go/pkg/entity"
)

// OverviewList aggregates one Overview per namespace for the chosen entity
// kind, bucketing each item's health exactly once.
func (k *Kiali) OverviewList(ctx context.Context, namespaces []string, overviewType entity.OverviewType) ([]*entity.Overview, error) {
	scope, err := k.namespaceScope(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	overviews := make([]*entity.Overview, 0, len(scope))
	for _, namespace := range scope {
		overview := &entity.Overview{
			OverviewType: overviewType,
			Namespace:    namespace,
		}
		switch overviewType {
		case entity.OverviewServices:
			items, err := k.ServiceList(ctx, []string{namespace})
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				overview.CountHealth(item.Health)
			}
		case entity.OverviewWorkloads:
			items, err := k.WorkloadList(ctx, []string{namespace})
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				overview.CountHealth(item.Health)
			}
		default:
			items, err := k.ApplicationList(ctx, []string{namespace})
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				overview.CountHealth(item.Health)
			}
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}
