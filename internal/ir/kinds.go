package ir

import "fmt"

// Kind tags an operation with its place in the catalogue. Primitive tensor
// kinds come first, then the two container kinds, then the terminators.
type Kind int

const (
	KindInvalid Kind = iota

	// Primitive tensor operations
	KindConv2D
	KindAvgPool2D
	KindMaxPool2D
	KindMatMul
	KindMul
	KindAdd
	KindSub
	KindRsqrt
	KindClamp
	KindTranspose
	KindReshape
	KindConst

	// Containers
	KindTask
	KindSchedule

	// Terminators
	KindYield
	KindReturn
)

var kindNames = map[Kind]string{
	KindConv2D:    "conv2d",
	KindAvgPool2D: "avgpool2d",
	KindMaxPool2D: "maxpool2d",
	KindMatMul:    "matmul",
	KindMul:       "mul",
	KindAdd:       "add",
	KindSub:       "sub",
	KindRsqrt:     "rsqrt",
	KindClamp:     "clamp",
	KindTranspose: "transpose",
	KindReshape:   "reshape",
	KindConst:     "const",
	KindTask:      "task",
	KindSchedule:  "schedule",
	KindYield:     "yield",
	KindReturn:    "return",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindByName resolves a textual operation name to its kind.
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// IsContainer reports whether operations of this kind carry a body block.
func (k Kind) IsContainer() bool {
	return k == KindTask || k == KindSchedule
}

// IsTerminator reports whether this kind ends a block.
func (k Kind) IsTerminator() bool {
	return k == KindYield || k == KindReturn
}

// IsPrimitive reports whether this kind is a primitive tensor operation.
func (k Kind) IsPrimitive() bool {
	return k >= KindConv2D && k <= KindConst
}
