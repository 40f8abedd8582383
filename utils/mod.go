package utils

import "math"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// MinOf returns the smallest value of measure over items, or +Inf when
// items is empty. The first error returned by measure aborts the scan.
func MinOf[T any](items []T, measure func(T) (float64, error)) (float64, error) {
	best := math.Inf(1)
	for _, item := range items {
		v, err := measure(item)
		if err != nil {
			return 0, err
		}
		if v < best {
			best = v
		}
	}
	return best, nil
}
