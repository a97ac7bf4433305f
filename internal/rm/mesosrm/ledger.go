package mesosrm

import (
	"sort"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/shopspring/decimal"
)

// remainingOffer returns a copy of offer with the consumed resources
// subtracted from its resource list. Consumption that does not fit the offer
// is a caller contract violation and leaves the result undefined; the pure
// ops do not re-validate it.
func remainingOffer(offer mesos.Offer, consumed []mesos.Resource) mesos.Offer {
	remaining, _ := subtractResources(offer.Resources, consumed)
	offer.Resources = remaining
	return offer
}

// subtractResources subtracts every consumed resource from have and reports
// whether the full quantity of each was found. Resources are matched by name,
// role and resource provider, never by object identity, and a consumed
// quantity may span several matching resources. Neither input is mutated.
func subtractResources(have, consumed []mesos.Resource) ([]mesos.Resource, bool) {
	remaining := append([]mesos.Resource(nil), have...)
	ok := true
	for i := range consumed {
		var drained bool
		remaining, drained = subtractResource(remaining, consumed[i])
		ok = ok && drained
	}
	return remaining, ok
}

func subtractResource(have []mesos.Resource, c mesos.Resource) ([]mesos.Resource, bool) {
	switch c.GetType() {
	case mesos.SCALAR:
		return subtractScalar(have, c)
	case mesos.RANGES:
		return subtractRanges(have, c)
	default:
		return have, false
	}
}

func matchesResource(have, want mesos.Resource) bool {
	return have.Name == want.Name &&
		have.GetType() == want.GetType() &&
		have.GetRole() == want.GetRole() &&
		providerKeyOf(have) == providerKeyOf(want)
}

// Scalar quantities are subtracted as decimals so that repeated consumption
// of fractional cpus never drifts the way float arithmetic would.
func subtractScalar(have []mesos.Resource, c mesos.Resource) ([]mesos.Resource, bool) {
	left := decimal.NewFromFloat(c.GetScalar().GetValue())
	out := make([]mesos.Resource, 0, len(have))
	for _, h := range have {
		if left.IsPositive() && matchesResource(h, c) && h.GetScalar() != nil {
			avail := decimal.NewFromFloat(h.GetScalar().GetValue())
			take := decimal.Min(left, avail)
			left = left.Sub(take)
			rest := avail.Sub(take)
			if rest.IsZero() {
				continue
			}
			v, _ := rest.Float64()
			h.Scalar = &mesos.Value_Scalar{Value: v}
		}
		out = append(out, h)
	}
	return out, !left.IsPositive()
}

func subtractRanges(have []mesos.Resource, c mesos.Resource) ([]mesos.Resource, bool) {
	left := normalizeRanges(c.GetRanges().GetRange())
	out := make([]mesos.Resource, 0, len(have))
	for _, h := range have {
		if len(left) > 0 && matchesResource(h, c) && h.GetRanges() != nil {
			held := h.GetRanges().GetRange()
			kept := rangeSetDifference(held, left)
			left = rangeSetDifference(left, held)
			if len(kept) == 0 {
				continue
			}
			h.Ranges = &mesos.Value_Ranges{Range: kept}
		}
		out = append(out, h)
	}
	return out, len(left) == 0
}

// rangeSetDifference returns a minus b as a normalized range set. Ranges are
// inclusive on both ends.
func rangeSetDifference(a, b []mesos.Value_Range) []mesos.Value_Range {
	out := normalizeRanges(a)
	for _, cut := range normalizeRanges(b) {
		next := make([]mesos.Value_Range, 0, len(out)+1)
		for _, r := range out {
			if cut.End < r.Begin || cut.Begin > r.End {
				next = append(next, r)
				continue
			}
			if r.Begin < cut.Begin {
				next = append(next, mesos.Value_Range{Begin: r.Begin, End: cut.Begin - 1})
			}
			if cut.End < r.End {
				next = append(next, mesos.Value_Range{Begin: cut.End + 1, End: r.End})
			}
		}
		out = next
	}
	return out
}

// normalizeRanges returns the ranges sorted by begin with adjacent and
// overlapping spans merged.
func normalizeRanges(in []mesos.Value_Range) []mesos.Value_Range {
	if len(in) == 0 {
		return nil
	}
	sorted := append([]mesos.Value_Range(nil), in...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Begin < sorted[j].Begin })
	out := []mesos.Value_Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.Begin <= last.End+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
