// Package tuning holds the 128-note frequency table consumed by the pitch
// quantizer and the providers that supply it.
//
// A [Provider] is the tuning authority seen from the audio thread: it
// reports whether an authority is present, maps a note index in [0, 127]
// to a frequency in Hz, and can mark notes as filtered (not part of the
// current scale). [Cache] polls a provider once per tick and reports
// whether any frequency changed since the previous poll.
//
// Providers may be updated from another goroutine. [Live] publishes whole
// immutable snapshots through an atomic pointer, so readers never observe a
// partially written table within one call. Consistency across calls is
// eventual: a change is picked up on the next poll.
package tuning
