// Package quantize snaps 1 V/octave pitch control voltages to the nearest
// pitch of an externally supplied, possibly changing, tuning table.
//
// A [Quantizer] is driven once per sample tick by the host. Each tick it
// polls the tuning [tuning.Provider], resolves changed channels against the
// cached frequency table with [Resolve], and emits a fixed-length trigger
// pulse on every channel whose output changes. Up to 16 polyphonic channels
// are processed per tick.
//
// The full table search is O(128) per channel, so by default it is
// throttled: between window boundaries (5 ms) the previous outputs are
// reused as long as the authority and rounding mode are unchanged. Table
// changes are therefore observed within one window.
//
// When no tuning authority is present the quantizer is a transparent
// pass-through and per-channel state follows the input, so quantization
// resumes without a jump when an authority appears.
//
// Quantizer is not safe for concurrent Process calls. The rounding and
// input modes may be changed from another goroutine.
package quantize
