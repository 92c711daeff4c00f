package control

import "github.com/sarchlab/rvcontrol/insts"

// Inputs are the external signals sampled by the control unit each tick.
// All fields are read-only; sampling them has no side effect on their
// producers.
type Inputs struct {
	// Fields are the decoded instruction fields from the decode stage.
	Fields insts.Fields
	// Hazards are the hazard flags computed upstream.
	Hazards HazardSignals
	// Cache is the instruction-cache status for this tick.
	Cache CacheStatus
	// Feedback is the branch-prediction outcome for this tick.
	Feedback BranchPredictionFeedback
	// Start is the global start/reset pulse.
	Start bool
}

// Outputs are the signals the control unit drives each tick.
type Outputs struct {
	// Signals go to the execution/memory/writeback datapath.
	Signals ControlSignals
	// MemReadRequest is the one-tick memory-read pulse to the fetch unit.
	MemReadRequest bool
	// CacheRetry is the one-tick cache-read-retry pulse to the fetch unit.
	CacheRetry bool
	// Update drives the branch-predictor storage. It is a registered
	// output: the value here was evaluated on the previous tick.
	Update PredictorUpdateSignals
}

// Statistics holds per-run counters for the control unit.
type Statistics struct {
	// Ticks is the number of clock ticks evaluated.
	Ticks uint64
	// Stalls is the number of ticks with IsStall asserted.
	Stalls uint64
	// Bubbles is the number of ticks a speculatively fetched instruction
	// was voided because of a taken or mispredicted branch.
	Bubbles uint64
	// MemReadRequests is the number of memory-read pulses issued.
	MemReadRequests uint64
	// CacheRetries is the number of cache-retry pulses issued.
	CacheRetries uint64
	// BHTUpdates is the number of committed history-table updates.
	BHTUpdates uint64
	// BTBUpdates is the number of committed target-buffer updates.
	BTBUpdates uint64
}

// StallRate returns the fraction of ticks spent stalled.
func (s Statistics) StallRate() float64 {
	if s.Ticks == 0 {
		return 0
	}
	return float64(s.Stalls) / float64(s.Ticks)
}

// Unit is the control unit. Tick evaluates it once per clock tick as a pure
// function of the current inputs and its internal state: the refill
// handshake and the predictor-update register are the only persistent
// mutable state, and both are owned exclusively here.
type Unit struct {
	decoder *Decoder
	hazard  *HazardController
	refill  *RefillHandshake
	update  *UpdateLogic

	stats Statistics
}

// UnitOption is a functional option for configuring the Unit.
type UnitOption func(*Unit)

// WithConfig applies the control-unit parameters from a Config.
func WithConfig(config *Config) UnitOption {
	return func(u *Unit) {
		u.refill = NewRefillHandshake(config.RetryWindow)
	}
}

// NewUnit creates a control unit with the default retry window.
func NewUnit(opts ...UnitOption) *Unit {
	u := &Unit{
		decoder: NewDecoder(),
		hazard:  NewHazardController(),
		refill:  NewRefillHandshake(DefaultRetryWindow),
		update:  NewUpdateLogic(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Tick evaluates one clock tick. Phase (a) computes every combinational
// output from the current inputs and state; phase (b) commits the
// registered state (refill handshake, predictor-update register) so the
// staged values become visible on the following tick.
func (u *Unit) Tick(in Inputs) Outputs {
	u.stats.Ticks++

	if in.Start {
		// Start/reset pulse: every execution-control signal inactive,
		// ALUOp NOP, IsStall false, internal state cleared.
		u.refill.Reset()
		u.update.Reset()
		return Outputs{Signals: Bubble()}
	}

	// Phase (a): combinational evaluation.
	base := u.decoder.Decode(in.Fields)
	refillOut := u.refill.Step(in.Cache)
	sigs := u.hazard.Merge(base, in.Hazards, in.Cache, u.refill.MissStall())
	update := u.update.Step(sigs.IsStall, in.Feedback)

	// Phase (b): commit registered state at the tick edge.
	u.refill.Commit()
	u.update.Commit()

	u.recordStats(sigs, in.Hazards, refillOut, update)

	return Outputs{
		Signals:        sigs,
		MemReadRequest: refillOut.MemReadRequest,
		CacheRetry:     refillOut.CacheRetry,
		Update:         update,
	}
}

func (u *Unit) recordStats(
	sigs ControlSignals,
	hz HazardSignals,
	refillOut RefillOutputs,
	update PredictorUpdateSignals,
) {
	if sigs.IsStall {
		u.stats.Stalls++
	} else if hz.BranchTaken || hz.PredictionWasWrong {
		u.stats.Bubbles++
	}
	if refillOut.MemReadRequest {
		u.stats.MemReadRequests++
	}
	if refillOut.CacheRetry {
		u.stats.CacheRetries++
	}
	if update.BHTUpdate {
		u.stats.BHTUpdates++
	}
	if update.BTBUpdate {
		u.stats.BTBUpdates++
	}
}

// RefillState returns the committed refill-handshake state.
func (u *Unit) RefillState() RefillState {
	return u.refill.State()
}

// Stats returns the accumulated statistics.
func (u *Unit) Stats() Statistics {
	return u.stats
}

// Reset clears all internal state and statistics.
func (u *Unit) Reset() {
	u.refill.Reset()
	u.update.Reset()
	u.stats = Statistics{}
}
