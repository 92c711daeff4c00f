package control

// HazardController merges the decoder's baseline signals with the hazard
// flags and the refill-handshake status into the final gated control
// signals. It is purely combinational; it holds no state across ticks.
type HazardController struct{}

// NewHazardController creates a new hazard/stall controller.
func NewHazardController() *HazardController {
	return &HazardController{}
}

// Merge computes the final control signals for one tick.
//
// The clear condition (no load-use hazard, no active branch-stall bits,
// cache hit) passes the baseline signals through, except that a taken or
// mispredicted branch turns the speculatively fetched instruction into a
// bubble that advances through the pipeline as a void, with IsStall false.
//
// The stall condition overrides the clear condition whenever both hold:
// IsStall is true whenever any stall source is active, and under I1 a stall
// forces every execution-control signal inactive and ALUOp to NOP.
func (c *HazardController) Merge(
	base ControlSignals,
	hz HazardSignals,
	cache CacheStatus,
	missStall bool,
) ControlSignals {
	out := Bubble()

	clear := !hz.LoadUseStall &&
		hz.BranchStallCurrent&BranchStallLow == 0 &&
		hz.BranchStallPrevious&BranchStallHigh == 0 &&
		cache.Hit
	if clear && !hz.BranchTaken && !hz.PredictionWasWrong {
		out = base
		out.IsStall = false
	}

	stall := hz.LoadUseStall ||
		hz.BranchStallCurrent != 0 ||
		hz.BranchStallPrevious&BranchStallHigh != 0 ||
		missStall
	if stall {
		out = Bubble()
		out.IsStall = true
	}

	return out
}
