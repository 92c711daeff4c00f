// Package insts provides RV32I instruction field definitions and the
// classification used by the control unit.
package insts

// RV32I base opcodes recognized by the control unit.
const (
	OpcodeOpReg  uint8 = 0b0110011 // register-register ALU (R-type)
	OpcodeLoad   uint8 = 0b0000011
	OpcodeStore  uint8 = 0b0100011
	OpcodeBranch uint8 = 0b1100011
	OpcodeJAL    uint8 = 0b1101111
)

// Funct3 values defined under the recognized opcodes.
const (
	Funct3AddSub uint8 = 0b000
	Funct3Or     uint8 = 0b110
	Funct3And    uint8 = 0b111
	Funct3Word   uint8 = 0b010 // LW / SW
	Funct3BEQ    uint8 = 0b000
)

// Funct7 values for the R-type ALU group.
const (
	Funct7Base uint8 = 0b0000000 // ADD, OR, AND
	Funct7Alt  uint8 = 0b0100000 // SUB
)

// Fields holds the decoded instruction fields sampled by the control unit
// each tick. All fields are read-only inputs; the widths follow the RV32I
// encoding (opcode 7 bits, funct3 3 bits, funct7 7 bits, rd 5 bits).
type Fields struct {
	// Opcode is the primary opcode, instruction bits [6:0].
	Opcode uint8

	// Funct3 is instruction bits [14:12].
	Funct3 uint8

	// Funct7 is instruction bits [31:25].
	Funct7 uint8

	// Rd is the destination register index, instruction bits [11:7].
	Rd uint8
}

// FieldsFromWord extracts the control-relevant fields from a raw 32-bit
// instruction word.
func FieldsFromWord(word uint32) Fields {
	return Fields{
		Opcode: uint8(word & 0x7F),
		Rd:     uint8((word >> 7) & 0x1F),
		Funct3: uint8((word >> 12) & 0x7),
		Funct7: uint8((word >> 25) & 0x7F),
	}
}
