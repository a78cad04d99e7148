package timeline

import "time"

// Sample evaluates the timeline at n evenly spaced instants after its now,
// the last one at now+horizon. The timeline is not advanced, so pending
// queues and interruptions are not applied.
func Sample[T comparable, O any](tl Timeline[T], n int, horizon time.Duration, eval func(Timeline[T]) O) []O {
	if n <= 0 {
		return nil
	}
	out := make([]O, 0, n)
	for i := 1; i <= n; i++ {
		at := tl.now.Add(time.Duration(int64(horizon) * int64(i) / int64(n)))
		out = append(out, eval(tl.At(at)))
	}
	return out
}
