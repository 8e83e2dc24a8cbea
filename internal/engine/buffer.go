package engine

// BufferSize picks the copy buffer for a file of size bytes. Small files are
// read in one call, huge files use the maximum buffer, and everything in
// between reads in twentieths, never below the minimum.
func BufferSize(size, minimum, maximum uint64) uint64 {
	if size <= minimum {
		return size
	}
	if size >= maximum*20 {
		return maximum
	}
	if chunk := size / 20; chunk > minimum {
		return chunk
	}
	return minimum
}

const debouncePercent = 1

// debouncer fires once per debouncePercent of total bytes accumulated.
type debouncer struct {
	threshold   uint64
	accumulated uint64
}

func newDebouncer(total uint64) *debouncer {
	threshold := total * debouncePercent / 100
	if threshold == 0 {
		threshold = 1
	}
	return &debouncer{threshold: threshold}
}

// add records n bytes and reports whether a snapshot is due.
func (d *debouncer) add(n uint64) bool {
	d.accumulated += n
	if d.accumulated < d.threshold {
		return false
	}
	d.accumulated = 0
	return true
}
