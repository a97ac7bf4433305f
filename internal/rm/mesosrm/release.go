package mesosrm

import (
	"github.com/gogo/protobuf/proto"
	mesos "github.com/mesos/mesos-go/api/v1/lib"

	"github.com/telamonlabs/telamon/pkg/model"
)

// UnreserveAndDestroyVolumes releases a previously held reservation and
// destroys its volumes. Unlike the other variants its protocol operations are
// derived from the resource list rather than supplied by the caller.
type UnreserveAndDestroyVolumes struct {
	resources []mesos.Resource
	stateOp   model.InstanceStateOp
	old       *model.Instance
}

// NewUnreserveAndDestroyVolumes builds the release op for the given reserved
// resources. An empty resource list is legal and yields no protocol
// operations.
func NewUnreserveAndDestroyVolumes(
	stateOp model.InstanceStateOp, old *model.Instance, resources []mesos.Resource,
) *UnreserveAndDestroyVolumes {
	return &UnreserveAndDestroyVolumes{resources: resources, stateOp: stateOp, old: old}
}

// InstanceID implements InstanceOp.
func (op *UnreserveAndDestroyVolumes) InstanceID() model.InstanceID {
	return op.stateOp.InstanceID()
}

// OldInstance implements InstanceOp.
func (op *UnreserveAndDestroyVolumes) OldInstance() *model.Instance { return op.old }

// StateOp implements InstanceOp.
func (op *UnreserveAndDestroyVolumes) StateOp() model.InstanceStateOp { return op.stateOp }

// ApplyToOffer implements InstanceOp.
func (op *UnreserveAndDestroyVolumes) ApplyToOffer(offer mesos.Offer) mesos.Offer {
	return remainingOffer(offer, op.consumedResources())
}

// Operations implements InstanceOp.
func (op *UnreserveAndDestroyVolumes) Operations() []mesos.Offer_Operation {
	return releaseOperations(op.resources)
}

func (op *UnreserveAndDestroyVolumes) consumedResources() []mesos.Resource {
	return op.resources
}

// releaseOperations turns a flat reserved resource list into the calls the
// manager accepts: volumes are destroyed first, then every reservation,
// including the stripped form of each disk reservation, is unreserved. A
// single operation may only refer to one resource provider, so both steps
// emit one operation per provider group.
func releaseOperations(resources []mesos.Resource) []mesos.Offer_Operation {
	withDisk, withoutDisk := partitionDiskResources(resources)

	reservations := append([]mesos.Resource(nil), withoutDisk...)
	for _, r := range withDisk {
		reservations = append(reservations, diskReservation(r))
	}

	var ops []mesos.Offer_Operation
	for _, g := range groupByProvider(withDisk) {
		ops = append(ops, mesos.Offer_Operation{
			Type:    mesos.Offer_Operation_DESTROY,
			Destroy: &mesos.Offer_Operation_Destroy{Volumes: g.resources},
		})
	}
	for _, g := range groupByProvider(reservations) {
		ops = append(ops, mesos.Offer_Operation{
			Type:      mesos.Offer_Operation_UNRESERVE,
			Unreserve: &mesos.Offer_Operation_Unreserve{Resources: g.resources},
		})
	}
	return ops
}

// diskReservation strips the volume state from a disk-backed resource so it
// can be folded into an unreserve. A non-root disk keeps its source, without
// it the manager cannot tell which disk is being released; a root disk
// carries no disk metadata at all. The input resource is not mutated.
func diskReservation(r mesos.Resource) mesos.Resource {
	out := *proto.Clone(&r).(*mesos.Resource)
	if src := r.GetDisk().GetSource(); src != nil {
		out.Disk = &mesos.Resource_DiskInfo{
			Source: proto.Clone(src).(*mesos.Resource_DiskInfo_Source),
		}
	} else {
		out.Disk = nil
	}
	return out
}
