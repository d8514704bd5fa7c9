// Package batch splits ordered identifier lists into fixed-size groups so
// retrieval can be paced against org limits.
package batch

// Split chunks items into contiguous groups of at most size elements,
// preserving order. The final group may be shorter. The concatenation of
// all groups equals the input. A non-positive size yields a single group
// containing everything; callers validate sizes upstream.
func Split[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
		if size == 0 {
			return nil
		}
	}
	var groups [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		group := make([]T, end-start)
		copy(group, items[start:end])
		groups = append(groups, group)
	}
	return groups
}

// Count returns the number of groups Split would produce for n items.
func Count(n, size int) int {
	if n == 0 {
		return 0
	}
	if size <= 0 {
		return 1
	}
	return (n + size - 1) / size
}
