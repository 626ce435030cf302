// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// errorDispatcher is the structural interface for error effect
// operations (kont.Throw, kont.Catch).
type errorDispatcher[E any] interface {
	DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
}

// produceErrorHandler handles both producer stream and error effects.
// Producer ops never block. Error ops short-circuit on Throw.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type produceErrorHandler[T, E, A any] struct {
	ctx    *produceContext[T]
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler for the composed Produce+Error handler.
// Dispatch order: Stream → Error.
func (h produceErrorHandler[T, E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if sop, ok := op.(produceDispatcher[T]); ok {
		v, _ := sop.DispatchProduce(h.ctx)
		return v, true
	}
	if eop, ok := op.(errorDispatcher[E]); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("shot: unhandled effect in produceErrorHandler")
}

// consumeErrorHandler handles both consumer stream and error effects.
// Stream ops park on the cell's condition variable. Error ops
// short-circuit on Throw.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type consumeErrorHandler[T, E, A any] struct {
	ctx    *consumeContext[T]
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler for the composed Consume+Error handler.
// Dispatch order: Stream → Error.
func (h consumeErrorHandler[T, E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if wop, ok := op.(consumeWaiter[T]); ok {
		return wop.DispatchConsumeWait(h.ctx), true
	}
	if eop, ok := op.(errorDispatcher[E]); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("shot: unhandled effect in consumeErrorHandler")
}

// ExecProduceError runs a producer protocol with error handling on the
// endpoint. Returns Either[E, R] — Right on success, Left on Throw.
func ExecProduceError[T, E, R any](p *Producer[T], protocol kont.Eff[R]) kont.Either[E, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := produceErrorHandler[T, E, R]{ctx: &p.ctx, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecProduceErrorExpr runs an Expr producer protocol with error
// handling on the endpoint. Returns Either[E, R].
func ExecProduceErrorExpr[T, E, R any](p *Producer[T], protocol kont.Expr[R]) kont.Either[E, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := produceErrorHandler[T, E, R]{ctx: &p.ctx, errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}

// ExecConsumeError runs a consumer protocol with error handling on the
// endpoint. Returns Either[E, R] — Right on success, Left on Throw.
// Next operations park on the condition variable, as with ExecConsume.
func ExecConsumeError[T, E, R any](c *Consumer[T], protocol kont.Eff[R]) kont.Either[E, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := consumeErrorHandler[T, E, R]{ctx: &c.ctx, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecConsumeErrorExpr runs an Expr consumer protocol with error
// handling on the endpoint. Returns Either[E, R].
func ExecConsumeErrorExpr[T, E, R any](c *Consumer[T], protocol kont.Expr[R]) kont.Either[E, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := consumeErrorHandler[T, E, R]{ctx: &c.ctx, errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}

// StepError evaluates a stream protocol with error support until the
// first effect suspension. Returns (Either[E, R], nil) on completion
// or error, or (zero, suspension) if pending.
func StepError[E, R any](protocol kont.Expr[R]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	return kont.StepExpr(wrapped)
}

// AdvanceProduceError dispatches the suspended operation on the
// producer endpoint. Producer stream ops always succeed; error ops are
// eager: Throw discards the suspension and returns Left.
func AdvanceProduceError[T, E, R any](p *Producer[T], susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]], error) {
	if sop, ok := susp.Op().(produceDispatcher[T]); ok {
		v, err := sop.DispatchProduce(&p.ctx)
		if err != nil {
			var zero kont.Either[E, R]
			return zero, susp, err
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	return advanceError[E, R](susp)
}

// AdvanceConsumeError dispatches the suspended operation on the
// consumer endpoint. Stream ops are non-blocking (ErrWouldBlock);
// error ops are eager: Throw discards the suspension and returns Left.
func AdvanceConsumeError[T, E, R any](c *Consumer[T], susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]], error) {
	if sop, ok := susp.Op().(consumeDispatcher[T]); ok {
		v, err := sop.DispatchConsume(&c.ctx)
		if err != nil {
			var zero kont.Either[E, R]
			return zero, susp, err
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	return advanceError[E, R](susp)
}

// advanceError dispatches a non-stream (error) operation eagerly.
func advanceError[E, R any](susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]], error) {
	eop, ok := susp.Op().(errorDispatcher[E])
	if !ok {
		panic("shot: unhandled effect in AdvanceError")
	}
	var ctx kont.ErrorContext[E]
	v, _ := eop.DispatchError(&ctx)
	if ctx.HasErr {
		susp.Discard()
		return kont.Left[E, R](ctx.Err), nil, nil
	}
	result, next := susp.Resume(v)
	return result, next, nil
}

// RunError creates a stream pair, runs the producer and consumer
// Cont-world protocols with error handling, and returns both results
// as Either values. Interleaves execution on the calling goroutine
// using adaptive backoff (iox.Backoff). Does not spawn goroutines or
// create Go channels.
func RunError[T, E, A, B any](producer kont.Eff[A], consumer kont.Eff[B]) (kont.Either[E, A], kont.Either[E, B]) {
	return RunErrorExpr[T, E](Reify(producer), Reify(consumer))
}

// RunErrorExpr creates a stream pair, runs the producer and consumer
// Expr-world protocols with error handling, and returns both results
// as Either values. Interleaves execution on the calling goroutine
// using adaptive backoff (iox.Backoff). Does not spawn goroutines or
// create Go channels.
func RunErrorExpr[T, E, A, B any](producer kont.Expr[A], consumer kont.Expr[B]) (kont.Either[E, A], kont.Either[E, B]) {
	p, c := Pipe[T]()
	resultP, suspP := StepError[E, A](producer)
	resultC, suspC := StepError[E, B](consumer)
	var bo iox.Backoff
	for suspP != nil || suspC != nil {
		progress := false
		if suspP != nil {
			var err error
			resultP, suspP, err = AdvanceProduceError[T, E](p, suspP)
			if err == nil {
				progress = true
			}
		}
		if suspC != nil {
			var err error
			resultC, suspC, err = AdvanceConsumeError[T, E](c, suspC)
			if err == nil {
				progress = true
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultP, resultC
}
