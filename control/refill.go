package control

// DefaultRetryWindow is the number of ticks between the cache-retry pulse
// and the earliest tick at which the miss stall may release. The program
// counter and the cache read advance combinationally in the same tick, so
// releasing the stall on the refill-complete tick would fetch from the
// already-advanced address and silently drop the first instruction of the
// refilled block. The extra retry tick re-issues the read at the
// pre-advance address.
const DefaultRetryWindow = 2

// RefillState is the internal state of the cache-refill handshake. It is
// owned and mutated exclusively by the RefillHandshake; no other component
// writes it.
type RefillState struct {
	// RequestPending latches an outstanding instruction-memory request. It
	// limits the memory-read pulse to a single tick no matter how long the
	// miss condition persists.
	RequestPending bool
	// RetryActive is set while the post-refill retry sequence runs.
	RetryActive bool
	// RetryCounter counts ticks of the retry window, the retry-pulse tick
	// included. The sequence ends when it reaches the window size.
	RetryCounter int
}

// RefillOutputs are the combinational pulses driven to the instruction-fetch
// unit this tick.
type RefillOutputs struct {
	// MemReadRequest is asserted for exactly one tick per detected miss.
	MemReadRequest bool
	// CacheRetry is asserted for exactly one tick per refill-complete event.
	CacheRetry bool
}

// RefillHandshake tracks an outstanding instruction-memory request and the
// post-refill retry sequence. It owns the only timing-critical internal
// state of the control unit. Step computes the tick's combinational outputs
// and stages the next state; Commit applies the staged state at the tick
// edge.
type RefillHandshake struct {
	state RefillState
	next  RefillState

	window        int
	stallEligible bool
}

// NewRefillHandshake creates a handshake with the given retry window.
// Windows smaller than one tick fall back to DefaultRetryWindow.
func NewRefillHandshake(window int) *RefillHandshake {
	if window < 1 {
		window = DefaultRetryWindow
	}
	return &RefillHandshake{window: window}
}

// Step evaluates one tick of the handshake. A refill-complete event
// pre-empts everything else: it resets the retry sequence the same tick,
// emits the one-tick retry pulse, and restarts the window. A miss observed
// with no request outstanding and no retry in flight emits the one-tick
// memory-read pulse and arms the pending latch.
func (h *RefillHandshake) Step(status CacheStatus) RefillOutputs {
	out := RefillOutputs{}
	h.next = h.state

	switch {
	case status.RefillCompleted:
		out.CacheRetry = true
		h.next.RequestPending = false
		h.next.RetryActive = true
		// The retry-pulse tick is the first tick of the window.
		h.next.RetryCounter = 1

	case !status.Hit && !h.state.RequestPending && !h.state.RetryActive:
		out.MemReadRequest = true
		h.next.RequestPending = true
		h.next.RetryActive = false
		h.next.RetryCounter = 0

	case h.state.RetryActive:
		if h.state.RetryCounter < h.window {
			h.next.RetryCounter = h.state.RetryCounter + 1
		} else {
			// Window elapsed: return to idle.
			h.next.RetryActive = false
			h.next.RetryCounter = 0
		}
	}

	// The stall may release only on the tick the counter holds its terminal
	// value, and a same-tick refill-complete event re-arms the sequence
	// before that check.
	done := !status.RefillCompleted &&
		h.state.RetryActive &&
		h.state.RetryCounter >= h.window
	h.stallEligible = !status.Hit && !done

	return out
}

// MissStall reports whether the miss path demands a stall for the tick most
// recently evaluated by Step.
func (h *RefillHandshake) MissStall() bool {
	return h.stallEligible
}

// Commit applies the state staged by Step. It models the clock edge ending
// the tick.
func (h *RefillHandshake) Commit() {
	h.state = h.next
}

// State returns the current (committed) handshake state.
func (h *RefillHandshake) State() RefillState {
	return h.state
}

// Reset returns the handshake to idle.
func (h *RefillHandshake) Reset() {
	h.state = RefillState{}
	h.next = RefillState{}
	h.stallEligible = false
}
