package entity

import "fmt"

// podNameSuffixLen is the length of the random suffix appended to generated
// pod names (e.g. "details-v1-5f4b7c9d8f-x2k8f" -> "-x2k8f"). The grouped
// display name strips exactly this many characters; this is a fixed contract
// of the pod naming convention, not a heuristic.
const podNameSuffixLen = 5

// GroupWorkloadPods collapses adjacent runs of pods sharing the same
// CreatedBy into a single display row, matching how the workload detail page
// groups replicas. The input is expected to arrive already ordered by
// creator, as the listing endpoint returns it; non-adjacent runs of the same
// creator intentionally form separate groups.
//
// A single-pod group keeps the pod's fields and gets a "(1 replica)" name
// suffix. A larger group takes its labels, container images, status and
// phase from the first pod (replicas are homogeneous on those fields), its
// name from the first pod's truncated name with the replica count, and a
// CreatedAt spanning the first and last pod of the group.
func GroupWorkloadPods(pods []WorkloadPod) []WorkloadPod {
	grouped := make([]WorkloadPod, 0, len(pods))
	for start := 0; start < len(pods); {
		end := start + 1
		for end < len(pods) && pods[end].CreatedBy == pods[start].CreatedBy {
			end++
		}
		grouped = append(grouped, collapsePods(pods[start:end]))
		start = end
	}
	return grouped
}

func collapsePods(group []WorkloadPod) WorkloadPod {
	first := group[0]
	if len(group) == 1 {
		first.Name = fmt.Sprintf("%s (1 replica)", first.Name)
		return first
	}
	last := group[len(group)-1]
	name := first.Name
	if len(name) > podNameSuffixLen {
		name = name[:len(name)-podNameSuffixLen]
	}
	return WorkloadPod{
		Name:                fmt.Sprintf("%s... (%d replicas)", name, len(group)),
		CreatedAt:           fmt.Sprintf("%s and %s", first.CreatedAt, last.CreatedAt),
		CreatedBy:           first.CreatedBy,
		Labels:              first.Labels,
		IstioInitContainers: first.IstioInitContainers,
		IstioContainers:     first.IstioContainers,
		Status:              first.Status,
		Phase:               first.Phase,
	}
}
