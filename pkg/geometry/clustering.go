package geometry

import "sort"

// ClusterValues groups sorted copies of values into clusters where each
// member is within tol of the previous member. Returns the clusters in
// ascending order.
func ClusterValues(values []float64, tol float64) [][]float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var clusters [][]float64
	current := []float64{sorted[0]}
	for _, v := range sorted[1:] {
		if v-current[len(current)-1] <= tol {
			current = append(current, v)
		} else {
			clusters = append(clusters, current)
			current = []float64{v}
		}
	}
	clusters = append(clusters, current)
	return clusters
}

// ClusterMeans returns the mean of each cluster produced by ClusterValues.
func ClusterMeans(values []float64, tol float64) []float64 {
	clusters := ClusterValues(values, tol)
	means := make([]float64, 0, len(clusters))
	for _, c := range clusters {
		sum := 0.0
		for _, v := range c {
			sum += v
		}
		means = append(means, sum/float64(len(c)))
	}
	return means
}
