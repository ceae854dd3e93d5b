package util

import "github.com/asecurityteam/rolling"

// RollingWindow is a fixed size window of the most recent samples.
// Buckets of a fresh rolling window hold zeros, so the number of
// appended samples is tracked to ignore the unfilled ones.
type RollingWindow struct {
	policy *rolling.PointPolicy
	size   int
	count  int
}

func CreateRollingWindow(size int) *RollingWindow {
	return &RollingWindow{
		policy: rolling.NewPointPolicy(rolling.NewWindow(size)),
		size:   size,
	}
}

func (w *RollingWindow) Append(value float64) {
	w.policy.Append(value)
	if w.count < w.size {
		w.count++
	}
}

// Len returns the number of samples in the window
func (w *RollingWindow) Len() int {
	return w.count
}

// GetWindowMax returns the max value in the window, 0 for an empty window
func GetWindowMax(window *RollingWindow) float64 {
	if window.count <= 0 {
		return 0
	}
	return window.policy.Reduce(func(w rolling.Window) float64 {
		// buckets are filled in order, starting at offset 0
		result := w[0][0]
		for offset := 1; offset < window.count; offset++ {
			result = max(result, w[offset][0])
		}
		return result
	})
}

// GetWindowAvg returns the average of all samples in the window, 0 for an empty window
func GetWindowAvg(window *RollingWindow) float64 {
	if window.count <= 0 {
		return 0
	}
	return window.policy.Reduce(rolling.Sum) / float64(window.count)
}
