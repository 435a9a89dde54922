package forecast

// group is one partition produced by groupBy: a key and the items that share
// it, in input order.
type group[T any, K comparable] struct {
	Key   K
	Items []T
}

// groupBy partitions items by the extracted key, preserving the order in
// which keys are first seen. Every grouping in the pipeline (the drilldown
// tree levels and both rollups) runs through this one primitive so ordering
// and tie-break behavior stay uniform.
func groupBy[T any, K comparable](items []T, keyOf func(T) K) []group[T, K] {
	index := make(map[K]int, len(items))
	groups := make([]group[T, K], 0)

	for _, item := range items {
		key := keyOf(item)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group[T, K]{Key: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}
