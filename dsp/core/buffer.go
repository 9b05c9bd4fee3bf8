package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// EnsureChannels resizes a per-channel buffer set to channels buffers of
// n samples each, reusing existing storage where it fits.
func EnsureChannels(bufs [][]float64, channels, n int) [][]float64 {
	if channels <= 0 {
		return bufs[:0]
	}
	if cap(bufs) >= channels {
		bufs = bufs[:channels]
	} else {
		grown := make([][]float64, channels)
		copy(grown, bufs)
		bufs = grown
	}
	for ch := range bufs {
		bufs[ch] = EnsureLen(bufs[ch], n)
	}
	return bufs
}

// Fill sets all values in buf to v.
func Fill(buf []float64, v float64) {
	for i := range buf {
		buf[i] = v
	}
}
