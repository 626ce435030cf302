// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a stream protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// AdvanceProduce dispatches the suspended producer operation on the
// endpoint. Producer dispatch always succeeds (sends never block);
// the error return exists for symmetry with AdvanceConsume and is
// always nil.
//
// On return, the suspension is consumed and the protocol advances to
// the next effect or completion.
func AdvanceProduce[T, R any](p *Producer[T], susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(produceDispatcher[T])
	if !ok {
		panic("shot: unhandled effect in AdvanceProduce")
	}
	v, err := sop.DispatchProduce(&p.ctx)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}

// AdvanceConsume dispatches the suspended consumer operation on the
// endpoint. DispatchConsume is non-blocking: it returns
// iox.ErrWouldBlock when the current cell has not been filled yet
// (the I/O boundary).
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is unconsumed and may be
// retried after the producer makes progress; the capability stays live.
func AdvanceConsume[T, R any](c *Consumer[T], susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(consumeDispatcher[T])
	if !ok {
		panic("shot: unhandled effect in AdvanceConsume")
	}
	v, err := sop.DispatchConsume(&c.ctx)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
