package pricing

import "time"

// ResolveDiscount selects the single active discount as of the given
// instant: among discounts whose inclusive validity window contains it,
// the one with the lowest priority number wins. Ties at equal priority go
// to the latest-created discount so the result stays deterministic
// regardless of input order.
// NextDiscountBoundary returns the earliest window edge after the given
// instant: the moment an inactive discount opens or an active one reaches
// its inclusive end. A price computed now must not be served past that
// edge; nil means no edge lies ahead.
func NextDiscountBoundary(discounts []Discount, asOf time.Time) *time.Time {
	var next *time.Time
	consider := func(edge time.Time) {
		if !edge.After(asOf) {
			return
		}
		if next == nil || edge.Before(*next) {
			next = &edge
		}
	}
	for _, d := range discounts {
		consider(d.ValidFrom)
		consider(d.ValidUntil)
	}
	return next
}

func ResolveDiscount(discounts []Discount, asOf time.Time) (Discount, bool) {
	var best *Discount
	for i := range discounts {
		d := &discounts[i]
		if !d.ActiveAt(asOf) {
			continue
		}
		switch {
		case best == nil:
			best = d
		case d.Priority < best.Priority:
			best = d
		case d.Priority == best.Priority && d.CreatedAt.After(best.CreatedAt):
			best = d
		}
	}
	if best == nil {
		return Discount{}, false
	}
	return *best, true
}
