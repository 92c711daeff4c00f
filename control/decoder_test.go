package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvcontrol/control"
	"github.com/sarchlab/rvcontrol/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *control.Decoder

	BeforeEach(func() {
		decoder = control.NewDecoder()
	})

	Describe("R-type instructions", func() {
		It("should decode ADD", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeOpReg, Funct7: 0b0000000, Funct3: 0b000,
			})

			Expect(sigs.ALUSrc).To(BeFalse())
			Expect(sigs.PCSrcCont).To(BeFalse())
			Expect(sigs.MemWrite).To(BeFalse())
			Expect(sigs.MemRead).To(BeFalse())
			Expect(sigs.MemToReg).To(BeFalse())
			Expect(sigs.RegWrite).To(BeTrue())
			Expect(sigs.ALUOp).To(Equal(control.ALUOpADD))
		})

		It("should decode SUB", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeOpReg, Funct7: 0b0100000, Funct3: 0b000,
			})

			Expect(sigs.RegWrite).To(BeTrue())
			Expect(sigs.ALUOp).To(Equal(control.ALUOpSUB))
		})

		It("should decode OR", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeOpReg, Funct7: 0b0000000, Funct3: 0b110,
			})

			Expect(sigs.RegWrite).To(BeTrue())
			Expect(sigs.ALUOp).To(Equal(control.ALUOpOR))
		})

		It("should decode AND", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeOpReg, Funct7: 0b0000000, Funct3: 0b111,
			})

			Expect(sigs.RegWrite).To(BeTrue())
			Expect(sigs.ALUOp).To(Equal(control.ALUOpAND))
		})
	})

	Describe("load word", func() {
		It("should enable the load path", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeLoad, Funct3: 0b010,
			})

			Expect(sigs.ALUSrc).To(BeTrue())
			Expect(sigs.PCSrcCont).To(BeFalse())
			Expect(sigs.MemWrite).To(BeFalse())
			Expect(sigs.MemRead).To(BeTrue())
			Expect(sigs.MemToReg).To(BeTrue())
			Expect(sigs.RegWrite).To(BeTrue())
			Expect(sigs.ALUOp).To(Equal(control.ALUOpADD))
		})
	})

	Describe("store word", func() {
		It("should enable the store path", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeStore, Funct3: 0b010,
			})

			Expect(sigs.ALUSrc).To(BeTrue())
			Expect(sigs.MemWrite).To(BeTrue())
			Expect(sigs.MemRead).To(BeFalse())
			Expect(sigs.MemToReg).To(BeFalse())
			Expect(sigs.RegWrite).To(BeFalse())
			Expect(sigs.ALUOp).To(Equal(control.ALUOpADD))
		})
	})

	Describe("branch equal", func() {
		It("should flag control flow and issue the compare", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeBranch, Funct3: 0b000,
			})

			Expect(sigs.PCSrcCont).To(BeTrue())
			Expect(sigs.RegWrite).To(BeFalse())
			Expect(sigs.ALUOp).To(Equal(control.ALUOpCMP))
		})
	})

	Describe("jump and link", func() {
		It("should write the link register when rd is not x0", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeJAL, Rd: 1,
			})

			Expect(sigs.PCSrcCont).To(BeTrue())
			Expect(sigs.RegWrite).To(BeTrue())
			Expect(sigs.ALUOp).To(Equal(control.ALUOpADD))
		})

		It("should suppress the link write when rd is x0", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeJAL, Rd: 0,
			})

			Expect(sigs.PCSrcCont).To(BeTrue())
			Expect(sigs.RegWrite).To(BeFalse())
		})
	})

	Describe("illegal combinations", func() {
		It("should produce the inactive pattern for an unknown opcode", func() {
			sigs := decoder.Decode(insts.Fields{Opcode: 0b1111111})
			Expect(sigs).To(Equal(control.Bubble()))
		})

		It("should produce the inactive pattern for unmapped funct3 under load", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeLoad, Funct3: 0b001,
			})
			Expect(sigs).To(Equal(control.Bubble()))
		})

		It("should produce the inactive pattern for unmapped funct7 under R-type", func() {
			sigs := decoder.Decode(insts.Fields{
				Opcode: insts.OpcodeOpReg, Funct7: 0b1000000, Funct3: 0b000,
			})
			Expect(sigs).To(Equal(control.Bubble()))
		})

		It("should have a total table with IsStall clear everywhere", func() {
			for kind := insts.Kind(0); kind <= insts.NumKinds; kind++ {
				sigs := decoder.Lookup(kind)
				Expect(sigs.IsStall).To(BeFalse())
			}
		})

		It("should never set IsStall", func() {
			for op := 0; op < 128; op++ {
				sigs := decoder.Decode(insts.Fields{Opcode: uint8(op)})
				Expect(sigs.IsStall).To(BeFalse())
			}
		})
	})
})
