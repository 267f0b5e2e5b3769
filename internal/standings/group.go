package standings

import (
	"cmp"
	"slices"
)

// Entry is one position in a grouped ordering: either a single item or a tie
// group of entries that could not be separated by the criterion that
// produced the ordering. Groups may nest to any depth while ties are being
// resolved; Flatten turns any nesting back into a plain ordered list.
type Entry[T any] struct {
	item    T
	members []Entry[T]
}

// Single wraps one item.
func Single[T any](item T) Entry[T] {
	return Entry[T]{item: item}
}

// Group wraps an ordered set of tied entries.
func Group[T any](members ...Entry[T]) Entry[T] {
	return Entry[T]{members: members}
}

// IsGroup reports whether the entry is a tie group.
func (e Entry[T]) IsGroup() bool {
	return e.members != nil
}

// Item returns the wrapped item of a single entry.
func (e Entry[T]) Item() T {
	return e.item
}

// Members returns the entries of a tie group, nil for a single entry.
func (e Entry[T]) Members() []Entry[T] {
	return e.members
}

// Items returns every item under the entry in order.
func (e Entry[T]) Items() []T {
	if !e.IsGroup() {
		return []T{e.item}
	}
	return Flatten(e.members)
}

// Flatten expands nested tie groups into one ordered list.
func Flatten[T any](entries []Entry[T]) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.IsGroup() {
			out = append(out, Flatten(e.members)...)
		} else {
			out = append(out, e.item)
		}
	}
	return out
}

// Singles wraps every item as a single entry, keeping order.
func Singles[T any](items []T) []Entry[T] {
	out := make([]Entry[T], len(items))
	for i, item := range items {
		out[i] = Single(item)
	}
	return out
}

// GroupBy sorts items descending by key and collapses each maximal run of
// equal keys into a tie group. The sort is stable, so tied items keep their
// input order.
func GroupBy[T any, K cmp.Ordered](items []T, key func(T) K) []Entry[T] {
	type keyed struct {
		item T
		key  K
	}
	sorted := make([]keyed, len(items))
	for i, item := range items {
		sorted[i] = keyed{item: item, key: key(item)}
	}
	slices.SortStableFunc(sorted, func(a, b keyed) int {
		return cmp.Compare(b.key, a.key)
	})

	out := make([]Entry[T], 0, len(sorted))
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].key == sorted[start].key {
			end++
		}
		if end-start == 1 {
			out = append(out, Single(sorted[start].item))
		} else {
			members := make([]Entry[T], 0, end-start)
			for _, k := range sorted[start:end] {
				members = append(members, Single(k.item))
			}
			out = append(out, Group(members...))
		}
		start = end
	}
	return out
}
