package control

// UpdateLogic implements the branch-predictor update decision table. It
// samples the tick's settled stall flag and the prediction feedback, and
// commits its outputs on the clock edge: the decision computed at tick T is
// visible to the predictor storage at tick T+1.
type UpdateLogic struct {
	reg  PredictorUpdateSignals
	next PredictorUpdateSignals
}

// NewUpdateLogic creates the update logic with its output register cleared.
func NewUpdateLogic() *UpdateLogic {
	return &UpdateLogic{}
}

// Step computes this tick's update decision and stages it for commit. The
// returned value is the currently registered output, committed at the
// previous tick edge.
func (u *UpdateLogic) Step(isStall bool, fb BranchPredictionFeedback) PredictorUpdateSignals {
	cur := u.reg
	u.next = decideUpdate(isStall, fb)
	return cur
}

// Commit applies the staged decision to the output register. It models the
// clock edge ending the tick.
func (u *UpdateLogic) Commit() {
	u.reg = u.next
}

// Reset clears the output register and any staged decision.
func (u *UpdateLogic) Reset() {
	u.reg = PredictorUpdateSignals{}
	u.next = PredictorUpdateSignals{}
}

// decideUpdate is the update decision table.
//
// A branch observed taken installs both the history counter and the target
// entry, whether or not a prediction was issued for it. A misprediction on
// a not-taken outcome corrects only the direction history; the target entry
// is left as is. No branch activity produces no update. A stall tick forces
// the no-update pattern regardless of the feedback.
func decideUpdate(isStall bool, fb BranchPredictionFeedback) PredictorUpdateSignals {
	if isStall {
		return PredictorUpdateSignals{}
	}

	switch {
	case fb.PredictionOutcome:
		return PredictorUpdateSignals{
			BHTUpdate: true,
			BTBUpdate: true,
			Direction: DirectionTaken,
		}
	case fb.PredictionMade:
		return PredictorUpdateSignals{
			BHTUpdate: true,
			BTBUpdate: false,
			Direction: DirectionNotTaken,
		}
	default:
		return PredictorUpdateSignals{}
	}
}
