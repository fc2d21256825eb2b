package fn

func Map[T any, V any](items []T, selector func(T) V) []V {
	var results []V
	for _, item := range items {
		results = append(results, selector(item))
	}
	return results
}

func Filter[T any](items []T, keep func(T) bool) []T {
	var results []T
	for _, item := range items {
		if keep(item) {
			results = append(results, item)
		}
	}
	return results
}
