package kiali

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
)

// ServiceList returns the services of the given namespaces, all namespaces
// when none are given. Service names, when provided, are substring
// restrictions; the restricted result collapses to set semantics.
func (k *Kiali) ServiceList(ctx context.Context, namespaces []string, serviceNames ...string) ([]*entity.Service, error) {
	scope, err := k.namespaceScope(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	var items []*entity.Service
	for _, namespace := range scope {
		var doc serviceListDoc
		if _, err := k.getJSON(ctx, fmt.Sprintf(ServicesEndpoint, url.PathEscape(namespace)), &doc); err != nil {
			return nil, err
		}
		services := make([]*entity.Service, len(doc.Services))
		g, gctx := errgroup.WithContext(ctx)
		for i, raw := range doc.Services {
			i, raw := i, raw
			g.Go(func() error {
				health, err := k.ServiceHealth(gctx, namespace, raw.Name)
				if err != nil {
					return err
				}
				services[i] = &entity.Service{
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
		items = append(items, services...)
	}
	return filter.ByName(items, serviceNames, func(s *entity.Service) string { return s.Name }), nil
}

// ServiceDetails returns the detail view of one service, or nil when the
// console has no such service.
func (k *Kiali) ServiceDetails(ctx context.Context, namespace, service string) (*entity.ServiceDetails, error) {
	var doc serviceDetailsDoc
	endpoint := fmt.Sprintf(ServiceDetailsEndpoint, url.PathEscape(namespace), url.PathEscape(service))
	found, err := k.getJSON(ctx, endpoint, &doc)
	if err != nil {
		return nil, err
	}
	if !found || doc.Service.Name == "" {
		return nil, nil
	}

	workloads := make([]entity.WorkloadDetails, 0, len(doc.Workloads))
	for _, raw := range doc.Workloads {
		workloadType, err := entity.ParseWorkloadType(raw.Type)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, entity.WorkloadDetails{
			Name:            raw.Name,
			WorkloadType:    workloadType,
			Labels:          labelsOrEmpty(raw.Labels),
			CreatedAt:       raw.CreatedAt,
			ResourceVersion: raw.ResourceVersion,
		})
	}

	virtualServices, err := k.normalizeVirtualServices(ctx, doc.VirtualServices.Items)
	if err != nil {
		return nil, err
	}
	destinationRules, err := k.normalizeDestinationRules(ctx, doc.DestinationRules.Items)
	if err != nil {
		return nil, err
	}

	health, err := k.ServiceHealth(ctx, namespace, service)
	if err != nil {
		return nil, err
	}

	return &entity.ServiceDetails{
		Namespace:        namespace,
		Name:             doc.Service.Name,
		IstioSidecar:     entity.SidecarFromBool(doc.Service.IstioSidecar),
		CreatedAt:        doc.Service.CreatedAt,
		ResourceVersion:  doc.Service.ResourceVersion,
		ServiceType:      doc.Service.Type,
		IP:               doc.Service.IP,
		Ports:            formatPorts(doc.Service.Ports),
		Labels:           labelsOrEmpty(doc.Service.Labels),
		Health:           health,
		Workloads:        workloads,
		SourceWorkloads:  sourceWorkloads(doc.Dependencies),
		VirtualServices:  virtualServices,
		DestinationRules: destinationRules,
	}, nil
}

func (k *Kiali) normalizeVirtualServices(ctx context.Context, items []configItem) ([]entity.VirtualService, error) {
	virtualServices := make([]entity.VirtualService, 0, len(items))
	for _, item := range items {
		var vs virtualServiceItem
		vs.Metadata = item.Metadata
		if err := decodeSpec(item.Spec, &vs.Spec); err != nil {
			return nil, err
		}
		status, err := k.ConfigValidation(ctx, vs.Metadata.Namespace, "virtualservices", vs.Metadata.Name)
		if err != nil {
			return nil, err
		}
		virtualServices = append(virtualServices, entity.VirtualService{
			Name:            vs.Metadata.Name,
			CreatedAt:       vs.Metadata.CreationTimestamp,
			ResourceVersion: vs.Metadata.ResourceVersion,
			Status:          status,
			Hosts:           vs.Spec.Hosts,
			Weights:         routeWeights(vs.Spec),
		})
	}
	return virtualServices, nil
}

// routeWeights normalizes the weighted routes of the first HTTP rule, which
// is the one the service detail page renders. Optional destination fields
// stay absent, and a weight of exactly 0 is treated as unset so it compares
// equal to the blank cell the UI shows.
func routeWeights(spec virtualServiceSpec) []entity.VirtualServiceWeight {
	if len(spec.HTTP) == 0 {
		return nil
	}
	weights := make([]entity.VirtualServiceWeight, 0, len(spec.HTTP[0].Route))
	for _, route := range spec.HTTP[0].Route {
		weight := entity.VirtualServiceWeight{
			Host:   route.Destination.Host,
			Subset: route.Destination.Subset,
			Status: route.Destination.Status,
		}
		if route.Destination.Port != nil {
			port := route.Destination.Port.Number
			weight.Port = &port
		}
		if route.Weight != 0 {
			w := route.Weight
			weight.Weight = &w
		}
		weights = append(weights, weight)
	}
	return weights
}

func (k *Kiali) normalizeDestinationRules(ctx context.Context, items []destinationRuleItem) ([]entity.DestinationRule, error) {
	rules := make([]entity.DestinationRule, 0, len(items))
	for _, item := range items {
		status, err := k.ConfigValidation(ctx, item.Metadata.Namespace, "destinationrules", item.Metadata.Name)
		if err != nil {
			return nil, err
		}
		rules = append(rules, entity.DestinationRule{
			Name:            item.Metadata.Name,
			Host:            item.Spec.Host,
			TrafficPolicy:   linearizeJSON(item.Spec.TrafficPolicy),
			Subsets:         linearizeSubsets(item.Spec.Subsets),
			CreatedAt:       item.Metadata.CreationTimestamp,
			ResourceVersion: item.Metadata.ResourceVersion,
			Status:          status,
		})
	}
	return rules, nil
}

// sourceWorkloads inverts the dependencies mapping of target -> [{name}]
// into one SourceWorkload per target. Targets are sorted for a stable
// result; the upstream mapping has no meaningful order.
func sourceWorkloads(dependencies map[string][]dependencyItem) []entity.SourceWorkload {
	targets := make([]string, 0, len(dependencies))
	for target := range dependencies {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	sources := make([]entity.SourceWorkload, 0, len(targets))
	for _, target := range targets {
		names := make([]string, 0, len(dependencies[target]))
		for _, dep := range dependencies[target] {
			names = append(names, dep.Name)
		}
		sources = append(sources, entity.SourceWorkload{To: target, Workloads: names})
	}
	return sources
}

// formatPorts renders the ports summary the way the detail page does:
// space-joined "<PROTOCOL> <name> (<port>)" tokens, the name part omitted
// for unnamed ports.
func formatPorts(ports []servicePort) string {
	var b strings.Builder
	for _, port := range ports {
		name := ""
		if port.Name != "" {
			name = " " + port.Name
		}
		fmt.Fprintf(&b, "%s%s (%d) ", port.Protocol, name, port.Port)
	}
	return strings.TrimSpace(b.String())
}

func labelsOrEmpty(labels map[string]string) map[string]string {
	if labels == nil {
		return map[string]string{}
	}
	return labels
}
