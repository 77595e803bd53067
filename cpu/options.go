package cpu

// ImmediateCompare selects how set-on-less-than widens its immediate.
type ImmediateCompare int

//go:generate go tool stringer -linecomment -type=ImmediateCompare

const (
	SignExtend ImmediateCompare = iota // sign-extend
	ZeroExtend                         // zero-extend
)

// SignalingCompare selects the treatment of a signaling compare whose
// predicate includes unordered, when neither operand is NaN.
type SignalingCompare int

//go:generate go tool stringer -linecomment -type=SignalingCompare

const (
	SignalingIEEE     SignalingCompare = iota // ieee
	SignalingReject                           // reject
	SignalingNaNTable                         // nan-table
)

// Options selects between interpreter behaviours that differ between
// implementations of this processor.
type Options struct {
	ImmediateCompare ImmediateCompare // SLTI/SLTIU immediate widening.
	SignalingCompare SignalingCompare // Signaling unordered FP compares.
}
