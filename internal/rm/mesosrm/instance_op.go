// Package mesosrm models the consequence of a placement decision against a
// Mesos offer. An InstanceOp carries the state transition the decision
// implies for the instance, the resources it consumes from the offer, and the
// protocol operations the resource manager needs to carry it out. The offer
// matcher decides which ops go on which offer; this package does the
// bookkeeping that keeps an in-memory offer consistent while several ops are
// applied to it in sequence, and shapes release intents into the per-provider
// unreserve/destroy calls the manager accepts.
package mesosrm

import (
	mesos "github.com/mesos/mesos-go/api/v1/lib"

	"github.com/telamonlabs/telamon/pkg/model"
)

// InstanceOp is one matching decision applied to an offer. The variant set is
// closed: LaunchTask, LaunchTaskGroup, ReserveAndCreateVolumes and
// UnreserveAndDestroyVolumes.
//
// Ops never validate offer sufficiency; the matcher must only hand over ops
// whose consumption fits the offer. Everything here is pure, so candidate ops
// can be evaluated against the same offer value from multiple goroutines.
type InstanceOp interface {
	// InstanceID is the instance the operation acts on, derived from the
	// carried state op.
	InstanceID() model.InstanceID
	// OldInstance is the instance state as it was before this operation, or
	// nil when the operation originates no prior instance.
	OldInstance() *model.Instance
	// StateOp is handed to the instance tracker once the accept call
	// succeeds.
	StateOp() model.InstanceStateOp
	// ApplyToOffer returns the offer remaining after this operation's
	// resource consumption. The given offer is not mutated.
	ApplyToOffer(offer mesos.Offer) mesos.Offer
	// Operations are the protocol operations to submit, in order.
	Operations() []mesos.Offer_Operation

	// consumedResources feeds the ledger and seals the variant set.
	consumedResources() []mesos.Resource
}

// LaunchTask launches a single task on the offer, consuming the resources
// listed on the task spec.
type LaunchTask struct {
	task    mesos.TaskInfo
	stateOp model.InstanceStateOp
	old     *model.Instance
}

// NewLaunchTask builds the launch op for one task. old may be nil for a fresh
// launch.
func NewLaunchTask(
	task mesos.TaskInfo, stateOp model.InstanceStateOp, old *model.Instance,
) *LaunchTask {
	return &LaunchTask{task: task, stateOp: stateOp, old: old}
}

// InstanceID implements InstanceOp.
func (op *LaunchTask) InstanceID() model.InstanceID { return op.stateOp.InstanceID() }

// OldInstance implements InstanceOp.
func (op *LaunchTask) OldInstance() *model.Instance { return op.old }

// StateOp implements InstanceOp.
func (op *LaunchTask) StateOp() model.InstanceStateOp { return op.stateOp }

// ApplyToOffer implements InstanceOp.
func (op *LaunchTask) ApplyToOffer(offer mesos.Offer) mesos.Offer {
	return remainingOffer(offer, op.consumedResources())
}

// Operations implements InstanceOp.
func (op *LaunchTask) Operations() []mesos.Offer_Operation {
	return []mesos.Offer_Operation{{
		Type:   mesos.Offer_Operation_LAUNCH,
		Launch: &mesos.Offer_Operation_Launch{TaskInfos: []mesos.TaskInfo{op.task}},
	}}
}

func (op *LaunchTask) consumedResources() []mesos.Resource { return op.task.Resources }

// LaunchTaskGroup launches a co-located group of tasks plus the executor they
// run under, consuming the union of all per-task resources and the
// executor's.
type LaunchTaskGroup struct {
	executor mesos.ExecutorInfo
	group    mesos.TaskGroupInfo
	stateOp  model.InstanceStateOp
	old      *model.Instance
}

// NewLaunchTaskGroup builds the launch op for a task group and its executor.
func NewLaunchTaskGroup(
	executor mesos.ExecutorInfo,
	group mesos.TaskGroupInfo,
	stateOp model.InstanceStateOp,
	old *model.Instance,
) *LaunchTaskGroup {
	return &LaunchTaskGroup{executor: executor, group: group, stateOp: stateOp, old: old}
}

// InstanceID implements InstanceOp.
func (op *LaunchTaskGroup) InstanceID() model.InstanceID { return op.stateOp.InstanceID() }

// OldInstance implements InstanceOp.
func (op *LaunchTaskGroup) OldInstance() *model.Instance { return op.old }

// StateOp implements InstanceOp.
func (op *LaunchTaskGroup) StateOp() model.InstanceStateOp { return op.stateOp }

// ApplyToOffer implements InstanceOp.
func (op *LaunchTaskGroup) ApplyToOffer(offer mesos.Offer) mesos.Offer {
	return remainingOffer(offer, op.consumedResources())
}

// Operations implements InstanceOp.
func (op *LaunchTaskGroup) Operations() []mesos.Offer_Operation {
	return []mesos.Offer_Operation{{
		Type: mesos.Offer_Operation_LAUNCH_GROUP,
		LaunchGroup: &mesos.Offer_Operation_LaunchGroup{
			Executor:  op.executor,
			TaskGroup: op.group,
		},
	}}
}

func (op *LaunchTaskGroup) consumedResources() []mesos.Resource {
	consumed := append([]mesos.Resource(nil), op.executor.Resources...)
	for _, t := range op.group.Tasks {
		consumed = append(consumed, t.Resources...)
	}
	return consumed
}

// ReserveAndCreateVolumes reserves the given resources and creates the
// persistent volumes associated with them. Reverting a reservation implies no
// prior instance exists, so OldInstance is always nil.
type ReserveAndCreateVolumes struct {
	resources []mesos.Resource
	volumes   []mesos.Resource
	stateOp   model.InstanceStateOp
}

// NewReserveAndCreateVolumes builds the reservation op. resources is the full
// list to reserve and what the op consumes from the offer; volumes is the
// subset to create persistent volumes for and may be empty.
func NewReserveAndCreateVolumes(
	stateOp model.InstanceStateOp, resources, volumes []mesos.Resource,
) *ReserveAndCreateVolumes {
	return &ReserveAndCreateVolumes{resources: resources, volumes: volumes, stateOp: stateOp}
}

// InstanceID implements InstanceOp.
func (op *ReserveAndCreateVolumes) InstanceID() model.InstanceID { return op.stateOp.InstanceID() }

// OldInstance implements InstanceOp. It is always nil for a reservation.
func (op *ReserveAndCreateVolumes) OldInstance() *model.Instance { return nil }

// StateOp implements InstanceOp.
func (op *ReserveAndCreateVolumes) StateOp() model.InstanceStateOp { return op.stateOp }

// ApplyToOffer implements InstanceOp.
func (op *ReserveAndCreateVolumes) ApplyToOffer(offer mesos.Offer) mesos.Offer {
	return remainingOffer(offer, op.consumedResources())
}

// Operations implements InstanceOp.
func (op *ReserveAndCreateVolumes) Operations() []mesos.Offer_Operation {
	ops := []mesos.Offer_Operation{{
		Type:    mesos.Offer_Operation_RESERVE,
		Reserve: &mesos.Offer_Operation_Reserve{Resources: op.resources},
	}}
	if len(op.volumes) > 0 {
		ops = append(ops, mesos.Offer_Operation{
			Type:   mesos.Offer_Operation_CREATE,
			Create: &mesos.Offer_Operation_Create{Volumes: op.volumes},
		})
	}
	return ops
}

func (op *ReserveAndCreateVolumes) consumedResources() []mesos.Resource { return op.resources }
