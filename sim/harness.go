package sim

import (
	"github.com/sarchlab/rvcontrol/control"
	"github.com/sarchlab/rvcontrol/icache"
	"github.com/sarchlab/rvcontrol/insts"
	"github.com/sarchlab/rvcontrol/predictor"
)

// TickRecord captures what one clock tick produced.
type TickRecord struct {
	// Tick is the zero-based tick number.
	Tick uint64
	// CacheHit and RefillCompleted are the cache status fed to the unit.
	CacheHit        bool
	RefillCompleted bool
	// Outputs are the control unit's outputs for the tick.
	Outputs control.Outputs
}

// Stats aggregates the counters of every component in the harness.
type Stats struct {
	Unit      control.Statistics
	ICache    icache.Statistics
	Predictor predictor.Stats
}

// Harness wires a control unit to the instruction-cache model and the
// predictor storage and steps the whole assembly one tick at a time. Each
// tick it advances the cache's refill machinery, samples the cache status,
// evaluates the unit, and feeds the unit's pulses and registered update
// signals back into their consumers.
type Harness struct {
	unit      *control.Unit
	icache    *icache.Cache
	predictor *predictor.Predictor

	tick uint64

	// The update signals visible this tick belong to the branch that
	// resolved on the previous tick.
	prevBranchPC     uint32
	prevBranchTarget uint32
}

// NewHarness builds a harness from a Config. A nil config uses defaults.
func NewHarness(config *control.Config) *Harness {
	if config == nil {
		config = control.DefaultConfig()
	}

	return &Harness{
		unit: control.NewUnit(control.WithConfig(config)),
		icache: icache.New(icache.Config{
			Size:          config.ICacheSize,
			Associativity: config.ICacheAssociativity,
			BlockSize:     config.ICacheBlockSize,
			RefillLatency: config.RefillLatency,
		}),
		predictor: predictor.New(predictor.Config{
			BHTSize: config.BHTSize,
			BTBSize: config.BTBSize,
		}),
	}
}

// Step evaluates one clock tick from a trace input.
func (h *Harness) Step(in TickInput) TickRecord {
	refillDone := h.icache.Tick()
	hit := h.icache.Lookup(in.FetchPC)

	out := h.unit.Tick(control.Inputs{
		Fields: insts.Fields{
			Opcode: in.Opcode,
			Funct3: in.Funct3,
			Funct7: in.Funct7,
			Rd:     in.Rd,
		},
		Hazards: control.HazardSignals{
			LoadUseStall:        in.LoadUseStall,
			BranchStallCurrent:  in.BranchStallCurrent,
			BranchStallPrevious: in.BranchStallPrevious,
			BranchTaken:         in.BranchTaken,
			PredictionWasWrong:  in.PredictionWasWrong,
		},
		Cache: control.CacheStatus{
			Hit:             hit,
			RefillCompleted: refillDone,
		},
		Feedback: control.BranchPredictionFeedback{
			PredictionMade:    in.PredictionMade,
			PredictionOutcome: in.PredictionOutcome,
		},
		Start: in.Start,
	})

	if out.MemReadRequest {
		h.icache.StartRefill(in.FetchPC)
	}
	if out.CacheRetry {
		h.icache.Retry()
	}

	// Registered update signals refer to the previous tick's branch.
	if out.Update.BHTUpdate || out.Update.BTBUpdate {
		h.predictor.Apply(h.prevBranchPC, h.prevBranchTarget, out.Update)
	}
	h.prevBranchPC = in.BranchPC
	h.prevBranchTarget = in.BranchTarget

	record := TickRecord{
		Tick:            h.tick,
		CacheHit:        hit,
		RefillCompleted: refillDone,
		Outputs:         out,
	}
	h.tick++
	return record
}

// Run replays a whole trace and returns the per-tick records.
func (h *Harness) Run(trace *Trace) []TickRecord {
	records := make([]TickRecord, 0, len(trace.Ticks))
	for _, in := range trace.Ticks {
		records = append(records, h.Step(in))
	}
	return records
}

// Predict serves a prediction from the predictor storage.
func (h *Harness) Predict(pc uint32) predictor.Prediction {
	return h.predictor.Predict(pc)
}

// Stats returns the aggregated statistics of all components.
func (h *Harness) Stats() Stats {
	return Stats{
		Unit:      h.unit.Stats(),
		ICache:    h.icache.Stats(),
		Predictor: h.predictor.Stats(),
	}
}

// Reset returns every component to its initial state.
func (h *Harness) Reset() {
	h.unit.Reset()
	h.icache.Reset()
	h.predictor.Reset()
	h.tick = 0
	h.prevBranchPC = 0
	h.prevBranchTarget = 0
}
