package kiali

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kiali/kiali-qe-go/pkg/entity"
)

// Error-ratio thresholds the console uses to bucket request health.
const (
	failureRatio  = 0.2
	degradedRatio = 0.001
)

// ServiceHealth fetches and reduces the health document of one service.
func (k *Kiali) ServiceHealth(ctx context.Context, namespace, service string) (entity.HealthType, error) {
	return k.health(ctx, fmt.Sprintf(ServiceHealthEndpoint, url.PathEscape(namespace), url.PathEscape(service)))
}

// WorkloadHealth fetches and reduces the health document of one workload.
func (k *Kiali) WorkloadHealth(ctx context.Context, namespace, workload string) (entity.HealthType, error) {
	return k.health(ctx, fmt.Sprintf(WorkloadHealthEndpoint, url.PathEscape(namespace), url.PathEscape(workload)))
}

// AppHealth fetches and reduces the health document of one application.
func (k *Kiali) AppHealth(ctx context.Context, namespace, app string) (entity.HealthType, error) {
	return k.health(ctx, fmt.Sprintf(AppHealthEndpoint, url.PathEscape(namespace), url.PathEscape(app)))
}

func (k *Kiali) health(ctx context.Context, endpoint string) (entity.HealthType, error) {
	var doc healthDoc
	found, err := k.getJSON(ctx, endpoint+"?rateInterval="+DefaultRateInterval, &doc)
	if err != nil {
		return "", err
	}
	if !found {
		return entity.HealthNA, nil
	}
	return doc.healthType(), nil
}

// healthType reduces one health document to the status badge the console
// renders. Replica trouble wins over traffic trouble: a workload with no
// available replicas is a Failure no matter what its error rate says.
func (doc *healthDoc) healthType() entity.HealthType {
	statuses := doc.WorkloadStatuses
	if doc.WorkloadStatus != nil {
		statuses = append(statuses, *doc.WorkloadStatus)
	}
	replicas := entity.HealthNA
	for _, status := range statuses {
		if status.DesiredReplicas == 0 {
			continue
		}
		switch {
		case status.AvailableReplicas == 0:
			return entity.HealthFailure
		case status.AvailableReplicas < status.DesiredReplicas:
			replicas = entity.HealthDegraded
		case replicas == entity.HealthNA:
			replicas = entity.HealthHealthy
		}
	}

	total, errors := doc.Requests.rates()
	if total == 0 {
		return replicas
	}
	ratio := errors / total
	switch {
	case ratio >= failureRatio:
		return entity.HealthFailure
	case ratio > degradedRatio:
		if replicas == entity.HealthFailure {
			return entity.HealthFailure
		}
		return entity.HealthDegraded
	}
	if replicas == entity.HealthNA {
		return entity.HealthHealthy
	}
	return replicas
}

// rates sums the inbound and outbound request rates of the document and the
// portion of them that failed. Rates are keyed protocol -> status code.
func (r requestHealth) rates() (total, errors float64) {
	for _, byCode := range []map[string]map[string]float64{r.Inbound, r.Outbound} {
		for _, codes := range byCode {
			for code, rate := range codes {
				total += rate
				if strings.HasPrefix(code, "4") || strings.HasPrefix(code, "5") {
					errors += rate
				}
			}
		}
	}
	return total, errors
}
