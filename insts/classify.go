package insts

// Kind is an exhaustive classification of the instructions the control unit
// distinguishes. Every opcode/funct3/funct7 combination maps to exactly one
// Kind; anything outside the recognized set, including undefined funct3 or
// funct7 values under a recognized opcode, classifies as KindIllegal.
type Kind uint8

// Instruction kinds.
const (
	KindIllegal Kind = iota
	KindAdd
	KindSub
	KindOr
	KindAnd
	KindLoadWord
	KindStoreWord
	KindBranchEqual
	KindJumpAndLink

	// NumKinds is the number of instruction kinds. Keep last.
	NumKinds
)

// String returns the mnemonic for the kind.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "ADD"
	case KindSub:
		return "SUB"
	case KindOr:
		return "OR"
	case KindAnd:
		return "AND"
	case KindLoadWord:
		return "LW"
	case KindStoreWord:
		return "SW"
	case KindBranchEqual:
		return "BEQ"
	case KindJumpAndLink:
		return "JAL"
	default:
		return "ILLEGAL"
	}
}

// Classify maps instruction fields to their Kind. The mapping is total: it
// never fails, and unrecognized combinations return KindIllegal so that the
// downstream control tables can treat them as a safe NOP.
func Classify(f Fields) Kind {
	switch f.Opcode {
	case OpcodeOpReg:
		return classifyOpReg(f)
	case OpcodeLoad:
		if f.Funct3 == Funct3Word {
			return KindLoadWord
		}
		return KindIllegal
	case OpcodeStore:
		if f.Funct3 == Funct3Word {
			return KindStoreWord
		}
		return KindIllegal
	case OpcodeBranch:
		if f.Funct3 == Funct3BEQ {
			return KindBranchEqual
		}
		return KindIllegal
	case OpcodeJAL:
		return KindJumpAndLink
	default:
		return KindIllegal
	}
}

// classifyOpReg resolves the R-type ALU group from funct7 and funct3.
func classifyOpReg(f Fields) Kind {
	switch f.Funct7 {
	case Funct7Base:
		switch f.Funct3 {
		case Funct3AddSub:
			return KindAdd
		case Funct3Or:
			return KindOr
		case Funct3And:
			return KindAnd
		}
	case Funct7Alt:
		if f.Funct3 == Funct3AddSub {
			return KindSub
		}
	}
	return KindIllegal
}
