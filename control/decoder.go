package control

import "github.com/sarchlab/rvcontrol/insts"

// Decoder maps classified instruction kinds to their baseline execution
// control signals. The mapping is a total lookup table indexed by
// insts.Kind, so every combination of instruction fields resolves to a
// well-defined signal pattern. IsStall is never set here; stall arbitration
// belongs to the HazardController.
type Decoder struct {
	table [insts.NumKinds]ControlSignals
}

// NewDecoder creates a decoder with the RV32I control table.
func NewDecoder() *Decoder {
	d := &Decoder{}

	d.table[insts.KindIllegal] = Bubble()
	d.table[insts.KindAdd] = ControlSignals{RegWrite: true, ALUOp: ALUOpADD}
	d.table[insts.KindSub] = ControlSignals{RegWrite: true, ALUOp: ALUOpSUB}
	d.table[insts.KindOr] = ControlSignals{RegWrite: true, ALUOp: ALUOpOR}
	d.table[insts.KindAnd] = ControlSignals{RegWrite: true, ALUOp: ALUOpAND}
	d.table[insts.KindLoadWord] = ControlSignals{
		ALUSrc:   true,
		MemRead:  true,
		MemToReg: true,
		RegWrite: true,
		ALUOp:    ALUOpADD,
	}
	d.table[insts.KindStoreWord] = ControlSignals{
		ALUSrc:   true,
		MemWrite: true,
		ALUOp:    ALUOpADD,
	}
	d.table[insts.KindBranchEqual] = ControlSignals{
		PCSrcCont: true,
		ALUOp:     ALUOpCMP,
	}
	d.table[insts.KindJumpAndLink] = ControlSignals{
		PCSrcCont: true,
		RegWrite:  true,
		ALUOp:     ALUOpADD,
	}

	return d
}

// Decode returns the baseline control signals for the given instruction
// fields. For jump-and-link, the link write is suppressed when the
// destination is x0.
func (d *Decoder) Decode(f insts.Fields) ControlSignals {
	kind := insts.Classify(f)
	sigs := d.table[kind]

	if kind == insts.KindJumpAndLink {
		sigs.RegWrite = f.Rd != 0
	}

	return sigs
}

// Lookup returns the table entry for a kind directly. It is mainly useful
// for table-level tests.
func (d *Decoder) Lookup(kind insts.Kind) ControlSignals {
	if kind >= insts.NumKinds {
		return Bubble()
	}
	return d.table[kind]
}
