package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTaskFunction() (*Function, *Operation) {
	fn := NewFunction("main")
	a := fn.Entry().AddArgument("f32")

	task := fn.NewOperation(KindTask, []*Value{a}, "f32")
	fn.Entry().Append(task)
	body := fn.NewBlock(task)
	arg := body.AddArgument("f32")
	clamp := fn.NewOperation(KindClamp, []*Value{arg}, "f32")
	body.Append(clamp)
	body.Append(fn.NewOperation(KindYield, []*Value{clamp.Result(0)}))

	fn.Entry().Append(fn.NewOperation(KindReturn, []*Value{task.Result(0)}))
	return fn, task
}

func TestVerifyAcceptsWellFormedFunction(t *testing.T) {
	fn, _ := validTaskFunction()
	assert.NoError(t, Verify(fn))
}

func TestVerifyMissingTerminator(t *testing.T) {
	fn := NewFunction("main")
	err := Verify(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no terminator")
}

func TestVerifyWrongTerminatorKind(t *testing.T) {
	fn := NewFunction("main")
	fn.Entry().Append(fn.NewOperation(KindYield, nil))
	err := Verify(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want return")
}

func TestVerifyBoundaryArgumentMismatch(t *testing.T) {
	fn, task := validTaskFunction()
	task.Body().AddArgument("f32") // argument with no matching operand
	err := Verify(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body arguments")
}

func TestVerifyYieldResultMismatch(t *testing.T) {
	fn := NewFunction("main")
	a := fn.Entry().AddArgument("f32")

	task := fn.NewOperation(KindTask, []*Value{a}, "f32")
	fn.Entry().Append(task)
	body := fn.NewBlock(task)
	arg := body.AddArgument("f32")
	clamp := fn.NewOperation(KindClamp, []*Value{arg}, "f32")
	body.Append(clamp)
	body.Append(fn.NewOperation(KindYield, nil)) // yields nothing, declares one result

	fn.Entry().Append(fn.NewOperation(KindReturn, []*Value{task.Result(0)}))

	err := Verify(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yields 0 values")
}

func TestVerifyValueLeaksIntoBody(t *testing.T) {
	fn := NewFunction("main")
	a := fn.Entry().AddArgument("f32")

	task := fn.NewOperation(KindTask, nil)
	fn.Entry().Append(task)
	body := fn.NewBlock(task)
	clamp := fn.NewOperation(KindClamp, []*Value{a}, "f32") // bypasses boundary
	body.Append(clamp)
	body.Append(fn.NewOperation(KindYield, nil))

	fn.Entry().Append(fn.NewOperation(KindReturn, nil))

	err := Verify(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leaks into")
}

func TestVerifyScheduleCapturesFunctionArguments(t *testing.T) {
	fn := NewFunction("main")
	a := fn.Entry().AddArgument("f32")

	sched := fn.NewOperation(KindSchedule, nil, "f32")
	fn.Entry().Append(sched)
	body := fn.NewBlock(sched)
	rsqrt := fn.NewOperation(KindRsqrt, []*Value{a}, "f32")
	body.Append(rsqrt)
	body.Append(fn.NewOperation(KindYield, []*Value{rsqrt.Result(0)}))

	fn.Entry().Append(fn.NewOperation(KindReturn, []*Value{sched.Result(0)}))

	assert.NoError(t, Verify(fn))
}

func TestVerifyUseBeforeDefinition(t *testing.T) {
	fn := NewFunction("main")
	a := fn.Entry().AddArgument("f32")

	producer := fn.NewOperation(KindRsqrt, []*Value{a}, "f32")
	consumer := fn.NewOperation(KindClamp, []*Value{producer.Result(0)}, "f32")
	fn.Entry().Append(consumer)
	fn.Entry().Append(producer) // definition after the use
	fn.Entry().Append(fn.NewOperation(KindReturn, []*Value{consumer.Result(0)}))

	err := Verify(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before its definition")
}
