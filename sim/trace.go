// Package sim provides a trace-driven harness for the control unit: it
// replays per-tick datapath inputs from a trace file while the
// instruction-cache model and the predictor storage close the loop on the
// cache and predictor signal contracts.
package sim

import (
	"encoding/json"
	"fmt"
	"os"
)

// TickInput holds the external inputs for one clock tick that come from the
// datapath rather than from the instruction-cache model: the decoded
// instruction fields, the hazard flags, the branch-prediction feedback, and
// the start pulse.
type TickInput struct {
	// FetchPC is the instruction-fetch address presented to the I-cache.
	FetchPC uint32 `json:"fetch_pc"`

	// Decoded instruction fields.
	Opcode uint8 `json:"opcode"`
	Funct3 uint8 `json:"funct3"`
	Funct7 uint8 `json:"funct7"`
	Rd     uint8 `json:"rd"`

	// Hazard flags.
	LoadUseStall        bool  `json:"load_use_stall"`
	BranchStallCurrent  uint8 `json:"branch_stall_current"`
	BranchStallPrevious uint8 `json:"branch_stall_previous"`
	BranchTaken         bool  `json:"branch_taken"`
	PredictionWasWrong  bool  `json:"prediction_was_wrong"`

	// Branch-prediction feedback for the branch resolving this tick.
	PredictionMade    bool   `json:"prediction_made"`
	PredictionOutcome bool   `json:"prediction_outcome"`
	BranchPC          uint32 `json:"branch_pc"`
	BranchTarget      uint32 `json:"branch_target"`

	// Start is the global start/reset pulse.
	Start bool `json:"start"`
}

// Trace is an ordered sequence of per-tick inputs.
type Trace struct {
	Ticks []TickInput `json:"ticks"`
}

// LoadTrace reads a trace from a JSON file.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace file: %w", err)
	}

	trace := &Trace{}
	if err := json.Unmarshal(data, trace); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}

	return trace, nil
}

// SaveTrace writes the trace to a JSON file.
func (t *Trace) SaveTrace(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize trace: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace file: %w", err)
	}

	return nil
}
