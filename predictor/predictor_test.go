package predictor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvcontrol/control"
	"github.com/sarchlab/rvcontrol/predictor"
)

var _ = Describe("Predictor", func() {
	var pred *predictor.Predictor

	const pc = uint32(0x1000)
	const target = uint32(0x2000)

	taken := control.PredictorUpdateSignals{
		BHTUpdate: true, BTBUpdate: true, Direction: control.DirectionTaken,
	}
	notTaken := control.PredictorUpdateSignals{
		BHTUpdate: true, Direction: control.DirectionNotTaken,
	}

	BeforeEach(func() {
		pred = predictor.New(predictor.DefaultConfig())
	})

	Describe("initial state", func() {
		It("should predict weakly taken with no known target", func() {
			p := pred.Predict(pc)
			Expect(p.Taken).To(BeTrue())
			Expect(p.TargetKnown).To(BeFalse())
			Expect(pred.Counter(pc)).To(Equal(uint8(2)))
		})
	})

	Describe("Apply with DirectionTaken", func() {
		It("should move the counter up and install the target", func() {
			pred.Apply(pc, target, taken)

			Expect(pred.Counter(pc)).To(Equal(uint8(3)))

			p := pred.Predict(pc)
			Expect(p.Taken).To(BeTrue())
			Expect(p.TargetKnown).To(BeTrue())
			Expect(p.Target).To(Equal(target))
		})

		It("should saturate at strongly taken", func() {
			pred.Apply(pc, target, taken)
			pred.Apply(pc, target, taken)
			Expect(pred.Counter(pc)).To(Equal(uint8(3)))
		})
	})

	Describe("Apply with DirectionNotTaken", func() {
		It("should move the counter down without touching the BTB", func() {
			pred.Apply(pc, target, notTaken)

			Expect(pred.Counter(pc)).To(Equal(uint8(1)))
			Expect(pred.Predict(pc).Taken).To(BeFalse())
			Expect(pred.Predict(pc).TargetKnown).To(BeFalse())
		})

		It("should saturate at strongly not taken", func() {
			for i := 0; i < 4; i++ {
				pred.Apply(pc, target, notTaken)
			}
			Expect(pred.Counter(pc)).To(Equal(uint8(0)))
		})
	})

	Describe("Apply with no update enables", func() {
		It("should leave the storage untouched", func() {
			pred.Apply(pc, target, control.PredictorUpdateSignals{
				Direction: control.DirectionTaken,
			})

			Expect(pred.Counter(pc)).To(Equal(uint8(2)))
			Expect(pred.Predict(pc).TargetKnown).To(BeFalse())
		})
	})

	Describe("BTB tag check", func() {
		It("should miss for a different PC mapping to the same entry", func() {
			pred.Apply(pc, target, taken)

			aliased := pc + uint32(predictor.DefaultConfig().BTBSize)*4
			Expect(pred.Predict(aliased).TargetKnown).To(BeFalse())
		})
	})

	Describe("statistics", func() {
		It("should count updates and lookups", func() {
			pred.Apply(pc, target, taken)
			pred.Apply(pc, target, notTaken)
			pred.Predict(pc)
			pred.Predict(pc + 8)

			stats := pred.Stats()
			Expect(stats.BHTUpdates).To(Equal(uint64(2)))
			Expect(stats.BTBUpdates).To(Equal(uint64(1)))
			Expect(stats.Lookups).To(Equal(uint64(2)))
			Expect(stats.BTBHits).To(Equal(uint64(1)))
			Expect(stats.BTBMisses).To(Equal(uint64(1)))
			Expect(stats.BTBHitRate()).To(BeNumerically("~", 50.0, 0.01))
		})
	})

	Describe("Reset", func() {
		It("should restore the initial state", func() {
			pred.Apply(pc, target, taken)
			pred.Reset()

			Expect(pred.Counter(pc)).To(Equal(uint8(2)))
			Expect(pred.Predict(pc).TargetKnown).To(BeFalse())
			Expect(pred.Stats().BHTUpdates).To(Equal(uint64(0)))
		})
	})
})
