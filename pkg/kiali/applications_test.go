package kiali

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kiali/kiali-qe-go/pkg/entity"
)

type ApplicationsSuite struct {
	KialiSuite
}

func (s *ApplicationsSuite) TestApplicationList() {
	s.Handler.Respond("/api/namespaces/bookinfo/apps", `{
		"applications": [
			{"name": "reviews", "istioSidecar": true},
			{"name": "ratings", "istioSidecar": false}
		]
	}`)
	s.Handler.Respond("/api/namespaces/bookinfo/apps/reviews/health", `{
		"requests": {"inbound": {"http": {"200": 10}}},
		"workloadStatuses": [{"name": "reviews-v1", "desiredReplicas": 1, "availableReplicas": 1}]
	}`)
	// ratings has no health document

	items, err := s.Kiali.ApplicationList(context.Background(), []string{"bookinfo"})
	s.Require().NoError(err, "Expected no error listing applications")
	s.Require().Len(items, 2, "Expected two applications")

	s.Run("discovery order is preserved", func() {
		s.Equal("reviews", items[0].Name, "Unexpected first application")
		s.Equal("ratings", items[1].Name, "Unexpected second application")
	})
	s.Run("health is fetched per application", func() {
		s.Equal(entity.HealthHealthy, items[0].Health, "Expected healthy reviews")
		s.Equal(entity.HealthNA, items[1].Health, "Expected N/A health without a health document")
	})
}

func (s *ApplicationsSuite) TestApplicationListSpansNamespaces() {
	s.Handler.Respond(NamespacesEndpoint, `[{"name":"alpha"},{"name":"beta"}]`)
	s.Handler.Respond("/api/namespaces/alpha/apps", `{"applications": [{"name": "frontend", "istioSidecar": true}]}`)
	s.Handler.Respond("/api/namespaces/beta/apps", `{"applications": [{"name": "backend", "istioSidecar": true}]}`)

	items, err := s.Kiali.ApplicationList(context.Background(), nil)
	s.Require().NoError(err, "Expected no error listing applications across namespaces")
	s.Require().Len(items, 2, "Expected applications from every discovered namespace")
	s.Equal("alpha", items[0].Namespace, "Unexpected first namespace")
	s.Equal("beta", items[1].Namespace, "Unexpected second namespace")
}

func (s *ApplicationsSuite) TestApplicationDetails() {
	s.Handler.Respond("/api/namespaces/bookinfo/apps/reviews", `{
		"name": "reviews",
		"istioSidecar": true,
		"workloads": [
			{"workloadName": "reviews-v1", "istioSidecar": true},
			{"workloadName": "reviews-v2", "istioSidecar": false}
		],
		"serviceNames": ["reviews"]
	}`)
	s.Handler.Respond("/api/namespaces/bookinfo/apps/reviews/health", `{}`)

	details, err := s.Kiali.ApplicationDetails(context.Background(), "bookinfo", "reviews")
	s.Require().NoError(err, "Expected no error fetching application details")
	s.Require().NotNil(details, "Expected application details")

	s.Run("workloads carry their own sidecar state", func() {
		s.Require().Len(details.Workloads, 2, "Expected two app workloads")
		s.Equal(entity.SidecarPresent, details.Workloads[0].IstioSidecar, "Expected sidecar for reviews-v1")
		s.Equal(entity.SidecarNotPresent, details.Workloads[1].IstioSidecar, "Expected no sidecar for reviews-v2")
	})
	s.Run("services are listed by name", func() {
		s.Equal([]string{"reviews"}, details.Services, "Unexpected service names")
	})
}

func (s *ApplicationsSuite) TestApplicationDetailsNotFound() {
	details, err := s.Kiali.ApplicationDetails(context.Background(), "bookinfo", "missing")
	s.Require().NoError(err, "Expected no error for a missing application")
	s.Nil(details, "Expected nil details for a missing application")
}

func TestApplications(t *testing.T) {
	suite.Run(t, new(ApplicationsSuite))
}
