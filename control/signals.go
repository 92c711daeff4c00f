// Package control implements the control unit of a five-stage pipelined
// RV32I processor. It converts decoded instruction fields into execution
// control signals, arbitrates stalls caused by data/control hazards and
// instruction-cache misses, and drives the update signals consumed by the
// branch-predictor storage.
package control

// ALUOp selects the ALU operation. It occupies 5 bits on the wire.
type ALUOp uint8

// ALU operations.
const (
	ALUOpNOP ALUOp = iota
	ALUOpADD
	ALUOpSUB
	ALUOpOR
	ALUOpAND
	// ALUOpCMP is the subtract-compare issued for branch-equal.
	ALUOpCMP
)

// String returns the mnemonic for the ALU operation.
func (op ALUOp) String() string {
	switch op {
	case ALUOpADD:
		return "ADD"
	case ALUOpSUB:
		return "SUB"
	case ALUOpOR:
		return "OR"
	case ALUOpAND:
		return "AND"
	case ALUOpCMP:
		return "CMP"
	default:
		return "NOP"
	}
}

// ControlSignals are the per-tick outputs driven to the execution, memory,
// and writeback datapath. They are recomputed every tick and carry no
// identity across ticks.
type ControlSignals struct {
	// ALUSrc selects the ALU's second operand (register vs immediate).
	ALUSrc bool
	// PCSrcCont flags a control-flow instruction whose target may replace PC+4.
	PCSrcCont bool
	// MemWrite enables a data-memory store this cycle.
	MemWrite bool
	// MemRead enables a data-memory load this cycle.
	MemRead bool
	// MemToReg selects writeback from memory instead of the ALU result.
	MemToReg bool
	// RegWrite enables register-file writeback this cycle.
	RegWrite bool
	// ALUOp is the operation forwarded to the ALU.
	ALUOp ALUOp
	// IsStall freezes the pipeline registers this cycle. Whenever IsStall is
	// true, all six execution-control signals are inactive and ALUOp is NOP.
	IsStall bool
}

// Bubble returns the fully inactive signal pattern: no register write, no
// memory access, no PC redirection, ALUOp NOP, IsStall false.
func Bubble() ControlSignals {
	return ControlSignals{ALUOp: ALUOpNOP}
}

// Bit masks for the 2-bit branch-stall vectors.
const (
	// BranchStallLow is bit 0 of a branch-stall vector.
	BranchStallLow uint8 = 0b01
	// BranchStallHigh is bit 1 of a branch-stall vector.
	BranchStallHigh uint8 = 0b10
)

// HazardSignals are the hazard flags computed upstream (forwarding units and
// branch resolution) and sampled here each tick. The control unit only
// reacts to them; it does not detect hazards itself.
type HazardSignals struct {
	// LoadUseStall is asserted when a load's result is needed by the
	// immediately following instruction before forwarding can supply it.
	LoadUseStall bool
	// BranchStallCurrent is the 2-bit branch-stall vector for this cycle.
	BranchStallCurrent uint8
	// BranchStallPrevious is the 2-bit branch-stall vector carried from the
	// previous cycle.
	BranchStallPrevious uint8
	// BranchTaken is asserted when a branch resolves taken this cycle.
	BranchTaken bool
	// PredictionWasWrong is asserted when the predictor's direction for the
	// resolving branch turned out to be incorrect.
	PredictionWasWrong bool
}

// CacheStatus carries the instruction-cache signals sampled each tick. Both
// fields are event pulses from the cache's point of view: Hit reflects the
// current lookup, RefillCompleted is asserted for exactly one tick when the
// missed block arrives.
type CacheStatus struct {
	Hit             bool
	RefillCompleted bool
}

// BranchPredictionFeedback carries the predictor outcome flags for the
// branch resolving this tick.
type BranchPredictionFeedback struct {
	// PredictionMade is asserted when a prediction was issued for the branch.
	PredictionMade bool
	// PredictionOutcome is asserted when the branch actually resolved taken.
	PredictionOutcome bool
}

// Direction is the branch direction recorded into the history table.
type Direction uint8

// Branch directions.
const (
	DirectionNone Direction = iota
	DirectionTaken
	DirectionNotTaken
)

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionTaken:
		return "Taken"
	case DirectionNotTaken:
		return "NotTaken"
	default:
		return "None"
	}
}

// PredictorUpdateSignals drive the external branch-predictor storage. They
// are registered outputs: the value computed at tick T commits on the clock
// edge and becomes visible at tick T+1.
type PredictorUpdateSignals struct {
	// BHTUpdate enables a branch-history-table counter update.
	BHTUpdate bool
	// BTBUpdate enables a branch-target-buffer entry install.
	BTBUpdate bool
	// Direction is the direction to record when BHTUpdate is asserted.
	Direction Direction
}
