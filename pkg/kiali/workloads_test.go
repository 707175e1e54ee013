package kiali

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kiali/kiali-qe-go/pkg/entity"
)

type WorkloadsSuite struct {
	KialiSuite
}

func (s *WorkloadsSuite) TestWorkloadList() {
	s.Handler.Respond("/api/namespaces/bookinfo/workloads", `{
		"workloads": [
			{"name": "reviews-v1", "type": "Deployment", "istioSidecar": true, "labels": {"app": "reviews", "version": "v1"}},
			{"name": "legacy", "type": "ReplicationController", "istioSidecar": false, "labels": {}}
		]
	}`)
	s.Handler.Respond("/api/namespaces/bookinfo/workloads/reviews-v1/health", `{
		"workloadStatus": {"name": "reviews-v1", "desiredReplicas": 2, "currentReplicas": 2, "availableReplicas": 2}
	}`)
	// legacy has no health document

	items, err := s.Kiali.WorkloadList(context.Background(), []string{"bookinfo"})
	s.Require().NoError(err, "Expected no error listing workloads")
	s.Require().Len(items, 2, "Expected two workloads")

	s.Run("workload types are parsed", func() {
		s.Equal(entity.WorkloadDeployment, items[0].WorkloadType, "Unexpected first workload type")
		s.Equal(entity.WorkloadReplicationController, items[1].WorkloadType, "Unexpected second workload type")
	})
	s.Run("label flags derive from label presence", func() {
		s.True(items[0].AppLabel, "Expected app label flag for reviews-v1")
		s.True(items[0].VersionLabel, "Expected version label flag for reviews-v1")
		s.False(items[1].AppLabel, "Expected no app label flag for legacy")
	})
	s.Run("health is fetched per workload", func() {
		s.Equal(entity.HealthHealthy, items[0].Health, "Expected healthy reviews-v1")
		s.Equal(entity.HealthNA, items[1].Health, "Expected N/A health without a health document")
	})
}

func (s *WorkloadsSuite) TestWorkloadListUnknownType() {
	s.Handler.Respond("/api/namespaces/bookinfo/workloads", `{
		"workloads": [{"name": "exotic", "type": "Rollout", "istioSidecar": false}]
	}`)

	items, err := s.Kiali.WorkloadList(context.Background(), []string{"bookinfo"})
	s.Require().Error(err, "Expected error for unknown workload type")
	s.ErrorContains(err, "unknown workload type", "Unexpected error message")
	s.Nil(items, "Expected nil result on error")
}

func (s *WorkloadsSuite) TestWorkloadDetails() {
	s.Handler.Respond("/api/namespaces/bookinfo/workloads/details-v1", `{
		"name": "details-v1",
		"type": "Deployment",
		"createdAt": "2026-08-20T09:00:00Z",
		"resourceVersion": "1500",
		"istioSidecar": true,
		"labels": {"app": "details", "version": "v1"},
		"services": [
			{"name": "details", "type": "ClusterIP", "ip": "10.0.0.7", "ports": [{"name": "http", "protocol": "TCP", "port": 9080}]}
		],
		"destinationServices": [
			{"name": "ratings", "namespace": "bookinfo"}
		],
		"pods": [
			{"name": "details-v1-abcde-11111", "createdAt": "2026-08-20T10:00:00Z", "createdBy": [{"name": "details-v1-abcde", "kind": "ReplicaSet"}],
				"labels": {"app": "details"}, "istioContainers": [{"name": "istio-proxy", "image": "proxyv2:1.1"}],
				"istioInitContainers": [{"name": "istio-init", "image": "proxy_init:1.1"}],
				"status": "Running", "appLabel": true, "versionLabel": true},
			{"name": "details-v1-abcde-22222", "createdAt": "2026-08-20T10:01:00Z", "createdBy": [{"name": "details-v1-abcde", "kind": "ReplicaSet"}],
				"labels": {"app": "details"}, "status": "Running", "appLabel": true, "versionLabel": true},
			{"name": "details-v2-fghij-33333", "createdAt": "2026-08-21T09:00:00Z", "createdBy": [{"name": "details-v2-fghij", "kind": "ReplicaSet"}],
				"labels": {"app": "details"}, "status": "Running", "appLabel": true, "versionLabel": false}
		]
	}`)
	s.Handler.Respond("/api/namespaces/bookinfo/workloads/details-v1/health", `{
		"workloadStatus": {"name": "details-v1", "desiredReplicas": 3, "currentReplicas": 3, "availableReplicas": 3}
	}`)

	details, err := s.Kiali.WorkloadDetails(context.Background(), "bookinfo", "details-v1")
	s.Require().NoError(err, "Expected no error fetching workload details")
	s.Require().NotNil(details, "Expected workload details")

	s.Run("identity and counters", func() {
		s.Equal("details-v1", details.Name, "Unexpected name")
		s.Equal(entity.WorkloadDeployment, details.WorkloadType, "Unexpected workload type")
		s.Equal(1, details.ServicesNumber, "Unexpected service count")
		s.Equal(1, details.DestinationServicesNumber, "Unexpected destination service count")
	})
	s.Run("pods collapse into creator groups", func() {
		s.Require().Len(details.Pods, 2, "Expected two pod groups")
		s.Equal(2, details.PodsNumber, "Expected pod count to match the grouped rows")
		s.Equal("details-v1-abcde-... (2 replicas)", details.Pods[0].Name, "Unexpected first group name")
		s.Equal("details-v2-fghij-33333 (1 replica)", details.Pods[1].Name, "Unexpected second group name")
		s.Equal("2026-08-20T10:00:00Z and 2026-08-20T10:01:00Z", details.Pods[0].CreatedAt, "Expected spanning timestamps")
	})
	s.Run("pod rows carry creator, containers and status", func() {
		s.Equal("details-v1-abcde (ReplicaSet)", details.Pods[0].CreatedBy, "Unexpected creator")
		s.Equal("proxyv2:1.1", details.Pods[0].IstioContainers, "Unexpected sidecar image")
		s.Equal("proxy_init:1.1", details.Pods[0].IstioInitContainers, "Unexpected init image")
		s.Equal(entity.ValidationValid, details.Pods[0].Status, "Expected valid status with sidecar and labels")
		s.Equal(entity.ValidationWarning, details.Pods[1].Status, "Expected warning status without a version label")
	})
	s.Run("destination services name their source workload", func() {
		s.Require().Len(details.DestinationServices, 1, "Expected one destination service")
		s.Equal("details-v1", details.DestinationServices[0].From, "Unexpected source workload")
		s.Equal("ratings", details.DestinationServices[0].Name, "Unexpected destination name")
	})
	s.Run("embedded services carry the ports summary", func() {
		s.Require().Len(details.Services, 1, "Expected one embedded service")
		s.Equal("TCP http (9080)", details.Services[0].Ports, "Unexpected ports string")
	})
}

func (s *WorkloadsSuite) TestWorkloadDetailsNotFound() {
	details, err := s.Kiali.WorkloadDetails(context.Background(), "bookinfo", "missing")
	s.Require().NoError(err, "Expected no error for a missing workload")
	s.Nil(details, "Expected nil details for a missing workload")
}

func TestWorkloads(t *testing.T) {
	suite.Run(t, new(WorkloadsSuite))
}
