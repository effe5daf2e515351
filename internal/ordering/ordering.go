// Package ordering maintains the dense 1-based order index carried by every
// ordered child collection of an exercise (options, parts, garbage, dialogue,
// responses). All operations renumber the slice so that the multiset of order
// values is exactly {1..N} afterwards.
package ordering

import "fmt"

// Orderable constrains a pointer to a child row carrying an order field
type Orderable[T any] interface {
	*T
	GetOrder() int
	SetOrder(int)
}

// Renumber assigns order = 1..N by slice position
func Renumber[T any, PT Orderable[T]](items []T) {
	for i := range items {
		PT(&items[i]).SetOrder(i + 1)
	}
}

// Move relocates the item at fromIndex to toIndex with stable move semantics:
// every item between the two positions shifts by one slot. The slice is
// renumbered afterwards.
func Move[T any, PT Orderable[T]](items []T, fromIndex, toIndex int) ([]T, error) {
	if fromIndex < 0 || fromIndex >= len(items) {
		return nil, fmt.Errorf("fromIndex %d out of range [0, %d)", fromIndex, len(items))
	}
	if toIndex < 0 || toIndex >= len(items) {
		return nil, fmt.Errorf("toIndex %d out of range [0, %d)", toIndex, len(items))
	}

	moved := items[fromIndex]
	if fromIndex < toIndex {
		copy(items[fromIndex:toIndex], items[fromIndex+1:toIndex+1])
	} else {
		copy(items[toIndex+1:fromIndex+1], items[toIndex:fromIndex])
	}
	items[toIndex] = moved

	Renumber[T, PT](items)
	return items, nil
}

// Insert appends the item at the end with order = len+1
func Insert[T any, PT Orderable[T]](items []T, item T) []T {
	items = append(items, item)
	PT(&items[len(items)-1]).SetOrder(len(items))
	return items
}

// Remove deletes every item matching the predicate and compacts the
// remaining order values to stay dense
func Remove[T any, PT Orderable[T]](items []T, match func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	Renumber[T, PT](kept)
	return kept
}

// Check verifies that the order values form the contiguous sequence 1..N
func Check[T any, PT Orderable[T]](items []T) error {
	seen := make(map[int]bool, len(items))
	for i := range items {
		order := PT(&items[i]).GetOrder()
		if order < 1 || order > len(items) {
			return fmt.Errorf("order %d out of range [1, %d]", order, len(items))
		}
		if seen[order] {
			return fmt.Errorf("duplicate order %d", order)
		}
		seen[order] = true
	}
	return nil
}
