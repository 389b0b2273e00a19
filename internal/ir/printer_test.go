package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintFlatFunction(t *testing.T) {
	fn := NewFunction("main")
	a := fn.Entry().AddArgument("tensor<4xf32>")
	b := fn.Entry().AddArgument("tensor<4xf32>")

	add := fn.NewOperation(KindAdd, []*Value{a, b}, "tensor<4xf32>")
	fn.Entry().Append(add)
	fn.Entry().Append(fn.NewOperation(KindReturn, []*Value{add.Result(0)}))

	expected := `func @main(%arg0: tensor<4xf32>, %arg1: tensor<4xf32>) {
  %0 = add(%arg0, %arg1) : tensor<4xf32>
  return %0
}
`
	assert.Equal(t, expected, Print(fn))
}

func TestPrintTaskBody(t *testing.T) {
	fn := NewFunction("main")
	a := fn.Entry().AddArgument("f32")

	rsqrt := fn.NewOperation(KindRsqrt, []*Value{a}, "f32")
	fn.Entry().Append(rsqrt)

	task := fn.NewOperation(KindTask, []*Value{rsqrt.Result(0)}, "f32")
	fn.Entry().Append(task)
	body := fn.NewBlock(task)
	arg := body.AddArgument("f32")
	clamp := fn.NewOperation(KindClamp, []*Value{arg}, "f32")
	body.Append(clamp)
	body.Append(fn.NewOperation(KindYield, []*Value{clamp.Result(0)}))

	fn.Entry().Append(fn.NewOperation(KindReturn, []*Value{task.Result(0)}))

	expected := `func @main(%arg0: f32) {
  %0 = rsqrt(%arg0) : f32
  %1 = task(%0) {
    ^body(%arg1: f32):
    %2 = clamp(%arg1) : f32
    yield %2
  } : f32
  return %1
}
`
	assert.Equal(t, expected, Print(fn))
}

func TestPrintConstAttr(t *testing.T) {
	fn := NewFunction("main")
	konst := fn.NewOperation(KindConst, nil, "tensor<f32>")
	konst.Attr = "0.5"
	fn.Entry().Append(konst)
	fn.Entry().Append(fn.NewOperation(KindReturn, []*Value{konst.Result(0)}))

	out := Print(fn)
	assert.Contains(t, out, "%0 = const 0.5 : tensor<f32>")
}
