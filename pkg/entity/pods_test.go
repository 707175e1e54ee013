package entity

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PodsSuite struct {
	suite.Suite
}

func (s *PodsSuite) TestGroupWorkloadPods() {
	pods := []WorkloadPod{
		{Name: "details-v1-abcde-11111", CreatedAt: "2026-08-20T10:00:00Z", CreatedBy: "details-v1-abcde (ReplicaSet)",
			Labels: map[string]string{"app": "details"}, Status: ValidationValid, Phase: "Running"},
		{Name: "details-v1-abcde-22222", CreatedAt: "2026-08-20T10:01:00Z", CreatedBy: "details-v1-abcde (ReplicaSet)",
			Labels: map[string]string{"app": "details"}, Status: ValidationValid, Phase: "Running"},
		{Name: "details-v1-abcde-33333", CreatedAt: "2026-08-20T10:02:00Z", CreatedBy: "details-v1-abcde (ReplicaSet)",
			Labels: map[string]string{"app": "details"}, Status: ValidationValid, Phase: "Running"},
		{Name: "details-v2-fghij-44444", CreatedAt: "2026-08-21T09:00:00Z", CreatedBy: "details-v2-fghij (ReplicaSet)",
			Labels: map[string]string{"app": "details", "version": "v2"}, Status: ValidationWarning, Phase: "Running"},
		{Name: "details-v2-fghij-55555", CreatedAt: "2026-08-21T09:05:00Z", CreatedBy: "details-v2-fghij (ReplicaSet)",
			Labels: map[string]string{"app": "details", "version": "v2"}, Status: ValidationWarning, Phase: "Running"},
	}

	grouped := GroupWorkloadPods(pods)
	s.Require().Len(grouped, 2, "Expected two groups for two creators")

	s.Run("first group collapses three replicas", func() {
		s.Equal("details-v1-abcde-... (3 replicas)", grouped[0].Name, "Unexpected grouped name")
		s.Equal("2026-08-20T10:00:00Z and 2026-08-20T10:02:00Z", grouped[0].CreatedAt, "Expected first and last creation timestamps")
		s.Equal("details-v1-abcde (ReplicaSet)", grouped[0].CreatedBy, "Unexpected creator")
		s.Equal(map[string]string{"app": "details"}, grouped[0].Labels, "Expected labels from the first pod")
		s.Equal(ValidationValid, grouped[0].Status, "Expected status from the first pod")
	})
	s.Run("second group collapses two replicas", func() {
		s.Equal("details-v2-fghij-... (2 replicas)", grouped[1].Name, "Unexpected grouped name")
		s.Equal("2026-08-21T09:00:00Z and 2026-08-21T09:05:00Z", grouped[1].CreatedAt, "Expected first and last creation timestamps")
		s.Equal(ValidationWarning, grouped[1].Status, "Expected status from the first pod")
	})
}

func (s *PodsSuite) TestGroupSinglePod() {
	pods := []WorkloadPod{
		{Name: "ratings-v1-zzzzz-12345", CreatedAt: "2026-08-22T08:00:00Z", CreatedBy: "ratings-v1-zzzzz (ReplicaSet)", Phase: "Running"},
	}

	grouped := GroupWorkloadPods(pods)
	s.Require().Len(grouped, 1, "Expected a single group")

	s.Run("keeps the full name with a singular replica suffix", func() {
		s.Equal("ratings-v1-zzzzz-12345 (1 replica)", grouped[0].Name, "Unexpected single-pod name")
	})
	s.Run("keeps the pod's own creation timestamp", func() {
		s.Equal("2026-08-22T08:00:00Z", grouped[0].CreatedAt, "Unexpected creation timestamp")
	})
}

func (s *PodsSuite) TestGroupNonAdjacentRunsStaySeparate() {
	pods := []WorkloadPod{
		{Name: "a-11111", CreatedBy: "a (ReplicaSet)"},
		{Name: "b-22222", CreatedBy: "b (ReplicaSet)"},
		{Name: "a-33333", CreatedBy: "a (ReplicaSet)"},
	}

	grouped := GroupWorkloadPods(pods)
	s.Len(grouped, 3, "Expected non-adjacent runs of the same creator to form separate groups")
}

func (s *PodsSuite) TestGroupEmptyInput() {
	s.Empty(GroupWorkloadPods(nil), "Expected no groups for no pods")
}

func TestPods(t *testing.T) {
	suite.Run(t, new(PodsSuite))
}
