// Package predictor provides the branch-history-table and
// branch-target-buffer storage driven by the control unit's registered
// update signals.
package predictor

import "github.com/sarchlab/rvcontrol/control"

// Config holds the predictor storage geometry.
type Config struct {
	// BHTSize is the number of Branch History Table entries.
	// Must be a power of 2. Default is 1024.
	BHTSize uint32
	// BTBSize is the number of Branch Target Buffer entries.
	// Must be a power of 2. Default is 256.
	BTBSize uint32
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		BHTSize: 1024,
		BTBSize: 256,
	}
}

// Stats holds statistics for the predictor storage.
type Stats struct {
	// Lookups is the total number of predictions served.
	Lookups uint64
	// BHTUpdates is the number of history-counter updates applied.
	BHTUpdates uint64
	// BTBUpdates is the number of target-entry installs applied.
	BTBUpdates uint64
	// BTBHits is the number of lookups that found a matching target entry.
	BTBHits uint64
	// BTBMisses is the number of lookups with no matching target entry.
	BTBMisses uint64
}

// BTBHitRate returns the BTB hit rate as a percentage.
func (s Stats) BTBHitRate() float64 {
	total := s.BTBHits + s.BTBMisses
	if total == 0 {
		return 0
	}
	return float64(s.BTBHits) / float64(total) * 100
}

// Prediction represents a branch prediction served from the storage.
type Prediction struct {
	// Taken indicates whether the branch is predicted to be taken.
	Taken bool
	// Target is the predicted target address (if known from the BTB).
	Target uint32
	// TargetKnown indicates whether the target address is known.
	TargetKnown bool
}

// Predictor is a bimodal predictor storage: 2-bit saturating counters in the
// BHT plus a direct-mapped, tag-checked BTB. It performs no update decisions
// of its own; it applies whatever the control unit's update signals say.
type Predictor struct {
	// 2-bit saturating counters. States: 0=strongly not taken,
	// 1=weakly not taken, 2=weakly taken, 3=strongly taken.
	bht []uint8

	btb      []btbEntry
	btbValid []bool

	bhtSize uint32
	btbSize uint32

	stats Stats
}

// btbEntry maps a branch PC to its target address.
type btbEntry struct {
	pc     uint32
	target uint32
}

// New creates predictor storage with the given configuration.
func New(config Config) *Predictor {
	bhtSize := config.BHTSize
	btbSize := config.BTBSize
	if bhtSize == 0 {
		bhtSize = 1024
	}
	if btbSize == 0 {
		btbSize = 256
	}

	p := &Predictor{
		bht:      make([]uint8, bhtSize),
		btb:      make([]btbEntry, btbSize),
		btbValid: make([]bool, btbSize),
		bhtSize:  bhtSize,
		btbSize:  btbSize,
	}

	// Bias the counters towards weakly taken.
	for i := range p.bht {
		p.bht[i] = 2
	}

	return p
}

// bhtIndex computes the BHT index for a PC, dropping the alignment bits.
func (p *Predictor) bhtIndex(pc uint32) uint32 {
	return (pc >> 2) & (p.bhtSize - 1)
}

// btbIndex computes the BTB index for a PC, dropping the alignment bits.
func (p *Predictor) btbIndex(pc uint32) uint32 {
	return (pc >> 2) & (p.btbSize - 1)
}

// Predict serves a prediction for the given PC.
func (p *Predictor) Predict(pc uint32) Prediction {
	pred := Prediction{}

	counter := p.bht[p.bhtIndex(pc)]
	pred.Taken = counter >= 2

	idx := p.btbIndex(pc)
	if p.btbValid[idx] && p.btb[idx].pc == pc {
		pred.Target = p.btb[idx].target
		pred.TargetKnown = true
		p.stats.BTBHits++
	} else {
		p.stats.BTBMisses++
	}

	p.stats.Lookups++
	return pred
}

// Apply drives the storage from one tick's committed update signals.
// DirectionTaken moves the history counter up, DirectionNotTaken moves it
// down, DirectionNone leaves it untouched. A BTB update installs the target
// for the PC.
func (p *Predictor) Apply(pc, target uint32, update control.PredictorUpdateSignals) {
	if update.BHTUpdate {
		idx := p.bhtIndex(pc)
		counter := p.bht[idx]
		switch update.Direction {
		case control.DirectionTaken:
			if counter < 3 {
				p.bht[idx] = counter + 1
			}
		case control.DirectionNotTaken:
			if counter > 0 {
				p.bht[idx] = counter - 1
			}
		}
		p.stats.BHTUpdates++
	}

	if update.BTBUpdate {
		idx := p.btbIndex(pc)
		p.btb[idx] = btbEntry{pc: pc, target: target}
		p.btbValid[idx] = true
		p.stats.BTBUpdates++
	}
}

// Counter returns the raw 2-bit counter value for a PC. Mainly useful for
// tests.
func (p *Predictor) Counter(pc uint32) uint8 {
	return p.bht[p.bhtIndex(pc)]
}

// Stats returns the accumulated statistics.
func (p *Predictor) Stats() Stats {
	return p.stats
}

// Reset clears all storage and statistics.
func (p *Predictor) Reset() {
	for i := range p.bht {
		p.bht[i] = 2
	}
	for i := range p.btbValid {
		p.btbValid[i] = false
	}
	p.stats = Stats{}
}
