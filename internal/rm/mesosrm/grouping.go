package mesosrm

import (
	mesos "github.com/mesos/mesos-go/api/v1/lib"
)

// providerKey identifies the resource provider owning a resource. It is a
// projection of the resource's provider fields, recomputed on demand;
// resources not tied to any provider share the empty key.
type providerKey string

func providerKeyOf(r mesos.Resource) providerKey {
	if id := r.GetProviderID(); id != nil {
		return providerKey(id.Value)
	}
	return ""
}

// resourceGroup is one provider's slice of a resource list.
type resourceGroup struct {
	provider  providerKey
	resources []mesos.Resource
}

// groupByProvider splits resources by provider identity. Groups appear in
// first-seen order and keep the input order of their members, so callers emit
// deterministic operation sequences.
func groupByProvider(resources []mesos.Resource) []resourceGroup {
	var groups []resourceGroup
	index := map[providerKey]int{}
	for _, r := range resources {
		key := providerKeyOf(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, resourceGroup{provider: key})
		}
		groups[i].resources = append(groups[i].resources, r)
	}
	return groups
}

// partitionDiskResources splits resources into disk-backed and the rest,
// preserving relative order within both halves.
func partitionDiskResources(resources []mesos.Resource) (disk, other []mesos.Resource) {
	for _, r := range resources {
		if r.GetDisk() != nil {
			disk = append(disk, r)
		} else {
			other = append(other, r)
		}
	}
	return disk, other
}
