package interrupt

import "novakernel/bitfield"

// GateKind distinguishes the two x86 IDT gate types the controller installs.
// Interrupt gates clear IF on entry; trap gates leave it untouched.
type GateKind uint8

const (
	GateInterrupt GateKind = iota
	GateTrap
)

// GateDescriptor is the in-memory (unpacked) form of one IDT entry. Wire
// returns its packed 8-byte x86 gate word.
type GateDescriptor struct {
	OffsetLow  uint16 `bitfield:",16"`
	Selector   uint16 `bitfield:",16"`
	Zero       uint8  `bitfield:",8"`
	TypeAttr   uint8  `bitfield:",8"`
	OffsetHigh uint16 `bitfield:",16"`
}

const gateWordBits = 64

// typeAttr byte layout: P(1) DPL(2) S(1) Type(4). Present, ring 0,
// system-segment, and the two gate-kind encodings novakernel ever installs.
const (
	typeAttrInterruptGate = 0x8E // P=1 DPL=00 S=0 Type=1110 (32-bit interrupt gate)
	typeAttrTrapGate      = 0x8F // P=1 DPL=00 S=0 Type=1111 (32-bit trap gate)
)

// codeSegmentSelector is the flat kernel code segment selector the boot GDT
// installs; every gate in the IDT points at it.
const codeSegmentSelector = 0x08

// NewGateDescriptor builds the (unpacked) descriptor for a handler stub at
// the given linear address; Wire packs it.
func NewGateDescriptor(handlerAddr uint32, kind GateKind) GateDescriptor {
	attr := uint8(typeAttrInterruptGate)
	if kind == GateTrap {
		attr = typeAttrTrapGate
	}
	return GateDescriptor{
		OffsetLow:  uint16(handlerAddr & 0xFFFF),
		Selector:   codeSegmentSelector,
		Zero:       0,
		TypeAttr:   attr,
		OffsetHigh: uint16(handlerAddr >> 16),
	}
}

// Wire packs d into its 64-bit IDT gate word, using the same bit-packing
// helper the rest of the kernel core uses for wire formats, rather than
// hand-rolled shifts.
func (d GateDescriptor) Wire() (uint64, error) {
	return bitfield.Pack(d, &bitfield.Config{NumBits: gateWordBits})
}

// UnwireGateDescriptor is the inverse of Wire, used by tests to assert the
// exact bytes a gate would occupy in the IDT.
func UnwireGateDescriptor(word uint64) (GateDescriptor, error) {
	var d GateDescriptor
	err := bitfield.Unpack(&d, word, &bitfield.Config{NumBits: gateWordBits})
	return d, err
}

const idtSize = 256

// idtTable holds the 256 installed gate descriptors. It is not itself
// consulted by Dispatch (which routes purely through the handler table and
// shadow mask); it exists so Controller.Init produces a complete,
// inspectable IDT image the way spec.md requires, and so tests can assert
// gate kinds per vector.
type idtTable [idtSize]GateDescriptor

func (t *idtTable) set(vector int, d GateDescriptor) {
	t[vector] = d
}
