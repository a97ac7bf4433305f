package mesosrm

import (
	"context"

	mesos "github.com/mesos/mesos-go/api/v1/lib"

	"github.com/telamonlabs/telamon/pkg/model"
)

// OfferMatcher decides which instance operations to run against an offer.
// Implementations own bin packing and must not return operations that
// together consume more than the offer holds; chaining ApplyToOffer across
// the returned ops is how they track the shrinking remainder within one
// matching pass.
type OfferMatcher interface {
	MatchOffer(ctx context.Context, offer mesos.Offer) ([]InstanceOp, error)
}

// InstanceStateApplier persists the state transitions carried by accepted
// operations. Called by the accept path after the resource manager
// acknowledges the call, in operation order.
type InstanceStateApplier interface {
	ApplyStateOps(ctx context.Context, ops []model.InstanceStateOp) error
}
