package trap

import "fmt"

// Vector identifies one of the 16 dispatchable CPU trap vectors. Vectors
// 0..11 are named after their real-mode meaning; 12..15 are unnamed but
// still installable and dispatchable.
type Vector uint8

const (
	DivideError Vector = iota
	SingleStep
	NMI
	Breakpoint
	Overflow
	Bound
	InvalidOpcode
	NoFPU
	DoubleFault
	FPUSeg
	StackFault
	GPFault
)

// VectorCount is the number of per-vector slots a Dispatcher holds.
const VectorCount = 16

var vectorNames = [...]string{
	DivideError:   "DivideError",
	SingleStep:    "SingleStep",
	NMI:           "NMI",
	Breakpoint:    "Breakpoint",
	Overflow:      "Overflow",
	Bound:         "Bound",
	InvalidOpcode: "InvalidOpcode",
	NoFPU:         "NoFPU",
	DoubleFault:   "DoubleFault",
	FPUSeg:        "FPUSeg",
	StackFault:    "StackFault",
	GPFault:       "GPFault",
}

// String returns the vector's name, or "vector<N>" for unnamed/out-of-range
// vectors.
func (v Vector) String() string {
	if int(v) < len(vectorNames) && vectorNames[v] != "" {
		return vectorNames[v]
	}
	return fmt.Sprintf("vector%d", uint8(v))
}

// fatal is the set of vectors that default-Panic when no custom handler is
// installed.
var fatal = map[Vector]bool{
	DivideError: true,
	DoubleFault: true,
	StackFault:  true,
	GPFault:     true,
}

// IsFatal reports whether v is in the fatal vector set.
func IsFatal(v Vector) bool { return fatal[v] }
