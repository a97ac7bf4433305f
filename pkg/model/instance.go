package model

import "time"

// InstanceID is the stable identity of a managed unit of work.
type InstanceID string

// InstanceState describes where an instance is in its lifecycle.
type InstanceState string

// The lifecycle states an instance moves through while this layer is
// involved. The full state machine lives with the instance tracker.
const (
	InstanceStateScheduled InstanceState = "SCHEDULED"
	InstanceStateReserved  InstanceState = "RESERVED"
	InstanceStateLaunched  InstanceState = "LAUNCHED"
)

// Instance is the scheduler's durable record of a workload unit and its
// current lifecycle state. This layer only reads instances, it never mutates
// or persists them.
type Instance struct {
	ID        InstanceID
	AgentID   string
	State     InstanceState
	CreatedAt time.Time
}

// InstanceStateOp describes how an instance's persisted state should change
// once the protocol operations for an offer have been accepted. State ops are
// produced by the offer matcher, carried unchanged by an instance operation,
// and applied by the instance tracker after the accept call succeeds.
type InstanceStateOp interface {
	// InstanceID is the instance the transition applies to.
	InstanceID() InstanceID

	isStateOp()
}

// MarkLaunched records that the instance's tasks were launched.
type MarkLaunched struct{ Instance Instance }

// MarkReserved records that resources were reserved for the instance.
type MarkReserved struct{ Instance Instance }

// MarkUnreserved records that the instance's reservation was released.
type MarkUnreserved struct{ ID InstanceID }

// InstanceID implements InstanceStateOp.
func (op MarkLaunched) InstanceID() InstanceID { return op.Instance.ID }

// InstanceID implements InstanceStateOp.
func (op MarkReserved) InstanceID() InstanceID { return op.Instance.ID }

// InstanceID implements InstanceStateOp.
func (op MarkUnreserved) InstanceID() InstanceID { return op.ID }

func (MarkLaunched) isStateOp()   {}
func (MarkReserved) isStateOp()   {}
func (MarkUnreserved) isStateOp() {}
