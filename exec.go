// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

import (
	"code.hybscloud.com/kont"
)

// produceHandler implements kont.Handler for producer-side stream
// effects. Producer dispatch never blocks (a one-shot send always
// finds its cell empty), so no waiting is involved.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type produceHandler[T, R any] struct {
	ctx *produceContext[T]
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h produceHandler[T, R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(produceDispatcher[T])
	if !ok {
		panic("shot: unhandled effect in produceHandler")
	}
	v, _ := sop.DispatchProduce(h.ctx)
	return v, true
}

// consumeHandler implements kont.Handler for consumer-side stream
// effects. Blocking evaluation waits on the cell's condition variable
// via DispatchConsumeWait, parking the goroutine without spinning.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type consumeHandler[T, R any] struct {
	ctx *consumeContext[T]
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h consumeHandler[T, R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	wop, ok := op.(consumeWaiter[T])
	if !ok {
		panic("shot: unhandled effect in consumeHandler")
	}
	return wop.DispatchConsumeWait(h.ctx), true
}

// ExecProduce runs a Cont-world producer protocol on the endpoint.
// Producer operations never block; the call returns once the protocol
// completes. The endpoint's capability is threaded across Emit/End.
func ExecProduce[T, R any](p *Producer[T], protocol kont.Eff[R]) R {
	h := produceHandler[T, R]{ctx: &p.ctx}
	return kont.Handle(protocol, h)
}

// ExecProduceExpr runs an Expr-world producer protocol on the endpoint.
func ExecProduceExpr[T, R any](p *Producer[T], protocol kont.Expr[R]) R {
	h := produceHandler[T, R]{ctx: &p.ctx}
	return kont.HandleExpr(protocol, h)
}

// ExecConsume runs a Cont-world consumer protocol on the endpoint.
// Next operations park on the condition variable of the current cell
// until the producer sends or closes; no CPU is consumed while
// waiting and no scheduler fairness is assumed.
func ExecConsume[T, R any](c *Consumer[T], protocol kont.Eff[R]) R {
	h := consumeHandler[T, R]{ctx: &c.ctx}
	return kont.Handle(protocol, h)
}

// ExecConsumeExpr runs an Expr-world consumer protocol on the endpoint.
func ExecConsumeExpr[T, R any](c *Consumer[T], protocol kont.Expr[R]) R {
	h := consumeHandler[T, R]{ctx: &c.ctx}
	return kont.HandleExpr(protocol, h)
}
