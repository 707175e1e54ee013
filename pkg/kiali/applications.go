package kiali

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
)

// ApplicationList returns the applications of the given namespaces, all
// namespaces when none are given. Application names, when provided, are
// substring restrictions; the restricted result collapses to set semantics.
func (k *Kiali) ApplicationList(ctx context.Context, namespaces []string, applicationNames ...string) ([]*entity.Application, error) {
	scope, err := k.namespaceScope(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	var items []*entity.Application
	for _, namespace := range scope {
		var doc appListDoc
		if _, err := k.getJSON(ctx, fmt.Sprintf(AppsEndpoint, url.PathEscape(namespace)), &doc); err != nil {
			return nil, err
		}
		applications := make([]*entity.Application, len(doc.Applications))
		g, gctx := errgroup.WithContext(ctx)
		for i, raw := range doc.Applications {
			i, raw := i, raw
			g.Go(func() error {
				health, err := k.AppHealth(gctx, namespace, raw.Name)
				if err != nil {
					return err
				}
				applications[i] = &entity.Application{
					Namespace:    namespace,
					Name:         raw.Name,
					IstioSidecar: entity.SidecarFromBool(raw.IstioSidecar),
					Health:       health,
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		items = append(items, applications...)
	}
	return filter.ByName(items, applicationNames, func(a *entity.Application) string { return a.Name }), nil
}

// ApplicationDetails returns the detail view of one application, or nil when
// the console has no such application.
func (k *Kiali) ApplicationDetails(ctx context.Context, namespace, application string) (*entity.ApplicationDetails, error) {
	var doc appDetailsDoc
	endpoint := fmt.Sprintf(AppDetailsEndpoint, url.PathEscape(namespace), url.PathEscape(application))
	found, err := k.getJSON(ctx, endpoint, &doc)
	if err != nil {
		return nil, err
	}
	if !found || doc.Name == "" {
		return nil, nil
	}

	workloads := make([]entity.AppWorkload, 0, len(doc.Workloads))
	for _, raw := range doc.Workloads {
		workloads = append(workloads, entity.AppWorkload{
			Name:         raw.WorkloadName,
			IstioSidecar: entity.SidecarFromBool(raw.IstioSidecar),
		})
	}

	health, err := k.AppHealth(ctx, namespace, application)
	if err != nil {
		return nil, err
	}

	return &entity.ApplicationDetails{
		Namespace:    namespace,
		Name:         doc.Name,
		IstioSidecar: entity.SidecarFromBool(doc.IstioSidecar),
		Health:       health,
		Workloads:    workloads,
		Services:     doc.ServiceNames,
	}, nil
}
