package kiali

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
)

// WorkloadList returns the workloads of the given namespaces, all namespaces
// when none are given. Workload names, when provided, are substring
// restrictions; the restricted result collapses to set semantics.
func (k *Kiali) WorkloadList(ctx context.Context, namespaces []string, workloadNames ...string) ([]*entity.Workload, error) {
	scope, err := k.namespaceScope(ctx, namespaces)
	if err != nil {
		return nil, err
	}
	var items []*entity.Workload
	for _, namespace := range scope {
		var doc workloadListDoc
		if _, err := k.getJSON(ctx, fmt.Sprintf(WorkloadsEndpoint, url.PathEscape(namespace)), &doc); err != nil {
			return nil, err
		}
		workloads := make([]*entity.Workload, len(doc.Workloads))
		g, gctx := errgroup.WithContext(ctx)
		for i, raw := range doc.Workloads {
			i, raw := i, raw
			workloadType, err := entity.ParseWorkloadType(raw.Type)
			if err != nil {
				return nil, err
			}
			g.Go(func() error {
				health, err := k.WorkloadHealth(gctx, namespace, raw.Name)
				if err != nil {
					return err
				}
				_, appLabel := raw.Labels["app"]
				_, versionLabel := raw.Labels["version"]
				workloads[i] = &entity.Workload{
					Namespace:    namespace,
					Name:         raw.Name,
					WorkloadType: workloadType,
					IstioSidecar: entity.SidecarFromBool(raw.IstioSidecar),
					AppLabel:     appLabel,
					VersionLabel: versionLabel,
					Health:       health,
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		items = append(items, workloads...)
	}
	return filter.ByName(items, workloadNames, func(w *entity.Workload) string { return w.Name }), nil
}

// WorkloadDetails returns the detail view of one workload, with its pod rows
// grouped the way the workload detail page groups replicas, or nil when the
// console has no such workload.
func (k *Kiali) WorkloadDetails(ctx context.Context, namespace, workload string) (*entity.WorkloadDetails, error) {
	var doc workloadDetailsDoc
	endpoint := fmt.Sprintf(WorkloadDetailsEndpoint, url.PathEscape(namespace), url.PathEscape(workload))
	found, err := k.getJSON(ctx, endpoint, &doc)
	if err != nil {
		return nil, err
	}
	if !found || doc.Name == "" {
		return nil, nil
	}
	workloadType, err := entity.ParseWorkloadType(doc.Type)
	if err != nil {
		return nil, err
	}

	services := make([]entity.ServiceDetails, 0, len(doc.Services))
	for _, raw := range doc.Services {
		services = append(services, entity.ServiceDetails{
			Name:            raw.Name,
			CreatedAt:       raw.CreatedAt,
			ResourceVersion: raw.ResourceVersion,
			ServiceType:     raw.Type,
			IP:              raw.IP,
			Ports:           formatPorts(raw.Ports),
			Labels:          labelsOrEmpty(raw.Labels),
		})
	}

	destinationServices := make([]entity.DestinationService, 0, len(doc.DestinationServices))
	for _, raw := range doc.DestinationServices {
		destinationServices = append(destinationServices, entity.DestinationService{
			From:      workload,
			Name:      raw.Name,
			Namespace: raw.Namespace,
		})
	}

	pods := make([]entity.WorkloadPod, 0, len(doc.Pods))
	for _, raw := range doc.Pods {
		pods = append(pods, normalizePod(raw, doc.IstioSidecar))
	}
	pods = entity.GroupWorkloadPods(pods)

	health, err := k.WorkloadHealth(ctx, namespace, workload)
	if err != nil {
		return nil, err
	}

	return &entity.WorkloadDetails{
		Namespace:                 namespace,
		Name:                      doc.Name,
		WorkloadType:              workloadType,
		IstioSidecar:              entity.SidecarFromBool(doc.IstioSidecar),
		CreatedAt:                 doc.CreatedAt,
		ResourceVersion:           doc.ResourceVersion,
		Health:                    health,
		Labels:                    labelsOrEmpty(doc.Labels),
		PodsNumber:                len(pods),
		ServicesNumber:            len(services),
		DestinationServicesNumber: len(destinationServices),
		DestinationServices:       destinationServices,
		Pods:                      pods,
		Services:                  services,
	}, nil
}

func normalizePod(raw podDoc, istioSidecar bool) entity.WorkloadPod {
	var istioContainers, istioInitContainers string
	if len(raw.IstioContainers) > 0 {
		istioContainers = raw.IstioContainers[0].Image
	}
	if len(raw.IstioInitContainers) > 0 {
		istioInitContainers = raw.IstioInitContainers[0].Image
	}
	var createdBy string
	if len(raw.CreatedBy) > 0 {
		createdBy = fmt.Sprintf("%s (%s)", raw.CreatedBy[0].Name, raw.CreatedBy[0].Kind)
	}
	return entity.WorkloadPod{
		Name:                raw.Name,
		CreatedAt:           raw.CreatedAt,
		CreatedBy:           createdBy,
		Labels:              labelsOrEmpty(raw.Labels),
		IstioInitContainers: istioInitContainers,
		IstioContainers:     istioContainers,
		Status:              podStatus(istioSidecar, raw),
		Phase:               raw.Status,
	}
}

// podStatus is the status badge of one pod row: a pod without the sidecar or
// without the app/version labels gets a Warning.
func podStatus(istioSidecar bool, raw podDoc) entity.ConfigValidation {
	if !istioSidecar || !raw.VersionLabel || !raw.AppLabel {
		return entity.ValidationWarning
	}
	return entity.ValidationValid
}
