package mesosrm

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/telamonlabs/telamon/pkg/model"
)

const defaultRefuseSeconds = 5 * time.Second

// Config holds the tunables of the accept boundary.
type Config struct {
	// RefuseSeconds is how long the manager should withhold re-offering
	// resources the accept call declines.
	RefuseSeconds time.Duration
}

// DefaultConfig returns the config used when the operator sets nothing.
func DefaultConfig() Config {
	return Config{RefuseSeconds: defaultRefuseSeconds}
}

// AcceptPayload is everything the network client needs for one accept call
// against a single offer.
type AcceptPayload struct {
	OfferID    mesos.OfferID
	Operations []mesos.Offer_Operation
	Filters    *mesos.Filters
	// Remainder is the offer left after all operations, fed into the next
	// matching cycle.
	Remainder mesos.Offer
	// StateOps are handed to the instance tracker once the call succeeds, in
	// operation order.
	StateOps []model.InstanceStateOp
}

// BuildAccept assembles the accept payload for the given matching decisions.
// Each emitted protocol operation is stamped with a fresh operation ID so
// operation feedback can be correlated later.
//
// The matcher guarantees the ops fit the offer; since this is the last stop
// before the wire, the consumption is replayed anyway and the whole batch is
// rejected if it overruns the offer.
func (c Config) BuildAccept(offer mesos.Offer, ops []InstanceOp) (*AcceptPayload, error) {
	payload := &AcceptPayload{OfferID: offer.ID, Filters: c.filters()}
	remainder := offer
	var errs *multierror.Error
	for i, op := range ops {
		if op.StateOp() == nil {
			errs = multierror.Append(errs, errors.Errorf("operation %d carries no state op", i))
			continue
		}
		next, fits := consumeOffer(remainder, op)
		if !fits {
			errs = multierror.Append(errs, errors.Errorf(
				"instance %s consumes more than offer %s holds",
				op.InstanceID(), offer.ID.Value))
			continue
		}
		remainder = next
		for _, wireOp := range op.Operations() {
			wireOp.ID = &mesos.OperationID{Value: uuid.New().String()}
			payload.Operations = append(payload.Operations, wireOp)
		}
		payload.StateOps = append(payload.StateOps, op.StateOp())
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, errors.Wrapf(err, "building accept for offer %s", offer.ID.Value)
	}
	payload.Remainder = remainder
	log.WithFields(log.Fields{
		"offer":      offer.ID.Value,
		"agent":      offer.AgentID.Value,
		"operations": len(payload.Operations),
	}).Debug("assembled accept payload")
	return payload, nil
}

func (c Config) filters() *mesos.Filters {
	secs := c.RefuseSeconds.Seconds()
	return &mesos.Filters{RefuseSeconds: &secs}
}

func consumeOffer(offer mesos.Offer, op InstanceOp) (mesos.Offer, bool) {
	remaining, ok := subtractResources(offer.Resources, op.consumedResources())
	offer.Resources = remaining
	return offer, ok
}
