package mesosrm

import (
	"github.com/gogo/protobuf/proto"
	mesos "github.com/mesos/mesos-go/api/v1/lib"

	"github.com/telamonlabs/telamon/pkg/model"
)

func scalar(name string, v float64) mesos.Resource {
	return mesos.Resource{
		Name:   name,
		Type:   mesos.SCALAR.Enum(),
		Scalar: &mesos.Value_Scalar{Value: v},
	}
}

func cpus(v float64) mesos.Resource { return scalar("cpus", v) }

func memMB(v float64) mesos.Resource { return scalar("mem", v) }

func ports(spans ...[2]uint64) mesos.Resource {
	rs := make([]mesos.Value_Range, 0, len(spans))
	for _, s := range spans {
		rs = append(rs, mesos.Value_Range{Begin: s[0], End: s[1]})
	}
	return mesos.Resource{
		Name:   "ports",
		Type:   mesos.RANGES.Enum(),
		Ranges: &mesos.Value_Ranges{Range: rs},
	}
}

func onProvider(r mesos.Resource, provider string) mesos.Resource {
	r.ProviderID = &mesos.ResourceProviderID{Value: provider}
	return r
}

func withRole(r mesos.Resource, role string) mesos.Resource {
	r.Role = proto.String(role)
	return r
}

// rootDisk is a persistent volume on the agent's root disk: persistence and
// volume info, no distinguishing source.
func rootDisk(sizeMB float64, persistenceID string) mesos.Resource {
	r := scalar("disk", sizeMB)
	r.Disk = &mesos.Resource_DiskInfo{
		Persistence: &mesos.Resource_DiskInfo_Persistence{ID: persistenceID},
		Volume:      &mesos.Volume{ContainerPath: "data"},
	}
	return r
}

// mountDisk is a persistent volume on a MOUNT disk with its own source
// identity.
func mountDisk(sizeMB float64, sourceID string) mesos.Resource {
	r := rootDisk(sizeMB, "vol-"+sourceID)
	r.Disk.Source = &mesos.Resource_DiskInfo_Source{
		Type: mesos.Resource_DiskInfo_Source_MOUNT,
		ID:   proto.String(sourceID),
	}
	return r
}

func offerWith(resources ...mesos.Resource) mesos.Offer {
	return mesos.Offer{
		ID:          mesos.OfferID{Value: "offer-1"},
		FrameworkID: mesos.FrameworkID{Value: "framework-1"},
		AgentID:     mesos.AgentID{Value: "agent-1"},
		Hostname:    "agent-1.example.com",
		Resources:   resources,
	}
}

func taskWith(id string, resources ...mesos.Resource) mesos.TaskInfo {
	return mesos.TaskInfo{
		Name:      id,
		TaskID:    mesos.TaskID{Value: id},
		AgentID:   mesos.AgentID{Value: "agent-1"},
		Resources: resources,
	}
}

func launchedOp(id string) model.InstanceStateOp {
	return model.MarkLaunched{Instance: model.Instance{
		ID:      model.InstanceID(id),
		AgentID: "agent-1",
		State:   model.InstanceStateLaunched,
	}}
}

func unreservedOp(id string) model.InstanceStateOp {
	return model.MarkUnreserved{ID: model.InstanceID(id)}
}

func scalarValue(r mesos.Resource) float64 { return r.GetScalar().GetValue() }

func findResource(resources []mesos.Resource, name string) (mesos.Resource, bool) {
	for _, r := range resources {
		if r.Name == name {
			return r, true
		}
	}
	return mesos.Resource{}, false
}
