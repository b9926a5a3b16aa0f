package services

// Sequenced wraps an item placed in a visiting sequence.
// HasBeenConfigured is true when the item's position came from a saved sequence.
type Sequenced[V any] struct {
	Item              V
	HasBeenConfigured bool
}

// SortBySequence orders items following a previously saved sequence of keys.
//
// Items whose key appears in saved come first, in saved order; the remaining
// items follow in their input order. Keys of saved that match no item (e.g.
// clients deleted since the sequence was recorded) are skipped. When several
// items share a key only the first one is kept.
func SortBySequence[K comparable, V any](items []V, key func(V) K, saved []K) []Sequenced[V] {
	out, _ := ReconcileDeliverySequence(items, key, saved, nil)
	return out
}

// ReconcileDeliverySequence orders the items delivered on a day.
//
// Items listed in deliverySeq come first and are flagged as configured. Items
// listed only in the route's default routeSeq follow, then every other item in
// input order; neither is flagged as configured. Keys of deliverySeq that match
// no item are returned in stale so the caller can report the inconsistency.
func ReconcileDeliverySequence[K comparable, V any](
	items []V,
	key func(V) K,
	deliverySeq []K,
	routeSeq []K,
) (_ []Sequenced[V], stale []K) {
	byKey := make(map[K]V, len(items))
	keys := make([]K, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, dup := byKey[k]; dup {
			continue
		}
		byKey[k] = it
		keys = append(keys, k)
	}

	out := make([]Sequenced[V], 0, len(keys))
	consumed := make(map[K]struct{}, len(keys))

	take := func(seq []K, configured bool, recordStale bool) {
		for _, k := range seq {
			if _, done := consumed[k]; done {
				continue
			}
			consumed[k] = struct{}{}

			it, ok := byKey[k]
			if !ok {
				if recordStale {
					stale = append(stale, k)
				}
				continue
			}
			out = append(out, Sequenced[V]{Item: it, HasBeenConfigured: configured})
		}
	}

	take(deliverySeq, true, true)
	take(routeSeq, false, false)
	take(keys, false, false)

	return out, stale
}

// Items returns the wrapped items in sequence order.
func Items[V any](seq []Sequenced[V]) []V {
	out := make([]V, 0, len(seq))
	for _, s := range seq {
		out = append(out, s.Item)
	}
	return out
}
