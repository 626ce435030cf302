// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

import (
	"code.hybscloud.com/kont"
)

// produceContext threads the producer-side linear capability across
// effect dispatches. cur is nil once the stream has been ended.
type produceContext[T any] struct {
	cur *MultiSender[T]
}

// consumeContext threads the consumer-side linear capability across
// effect dispatches. cur is nil once the close marker was observed.
type consumeContext[T any] struct {
	cur *MultiReceiver[T]
}

// produceDispatcher is the structural interface for producer-side
// stream operations. DispatchProduce replaces the current capability
// with the one returned by the underlying send. It never blocks: a
// one-shot send always finds its cell empty.
type produceDispatcher[T any] interface {
	DispatchProduce(ctx *produceContext[T]) (kont.Resumed, error)
}

// consumeDispatcher is the structural interface for consumer-side
// stream operations. DispatchConsume is non-blocking: it returns
// iox.ErrWouldBlock at the I/O boundary when the current cell has not
// been filled yet, leaving the capability live for retry.
type consumeDispatcher[T any] interface {
	DispatchConsume(ctx *consumeContext[T]) (kont.Resumed, error)
}

// consumeWaiter is the blocking counterpart of consumeDispatcher,
// used by exec-world evaluation. DispatchConsumeWait parks on the
// cell's condition variable instead of polling.
type consumeWaiter[T any] interface {
	DispatchConsumeWait(ctx *consumeContext[T]) kont.Resumed
}

// Emit is the effect operation for sending one stream element.
// Perform(Emit[T]{Value: v}) transfers v to the consumer side.
type Emit[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// DispatchProduce handles Emit on the producer endpoint, threading the
// capability returned by Send. Never blocks.
func (e Emit[T]) DispatchProduce(ctx *produceContext[T]) (kont.Resumed, error) {
	if ctx.cur == nil {
		panic("shot: emit after end of stream")
	}
	ctx.cur = ctx.cur.Send(e.Value)
	return struct{}{}, nil
}

// End is the effect operation for closing the stream.
// Perform(End[T]{}) signals end-of-stream to the consumer.
type End[T any] struct {
	kont.Phantom[struct{}]
}

// DispatchProduce handles End on the producer endpoint. The capability
// is consumed; further Emit or End dispatches panic. Never blocks.
func (End[T]) DispatchProduce(ctx *produceContext[T]) (kont.Resumed, error) {
	if ctx.cur == nil {
		panic("shot: end after end of stream")
	}
	ctx.cur.Close()
	ctx.cur = nil
	return struct{}{}, nil
}

// Next is the effect operation for receiving the next stream element.
// Perform(Next[T]{}) resumes with Either[struct{}, T]: Right carries
// the element, Left marks end-of-stream.
type Next[T any] struct {
	kont.Phantom[kont.Either[struct{}, T]]
}

// endOfStream builds the Left resumption for Next dispatch.
// Either[struct{}, T] is generic, so the closed marker cannot be
// pre-boxed as a package value the way non-generic operations are.
func endOfStream[T any]() kont.Resumed {
	return kont.Left[struct{}, T](struct{}{})
}

// DispatchConsume handles Next on the consumer endpoint, threading the
// capability yielded by the transfer. Non-blocking: returns
// iox.ErrWouldBlock while the current cell is empty.
func (Next[T]) DispatchConsume(ctx *consumeContext[T]) (kont.Resumed, error) {
	if ctx.cur == nil {
		panic("shot: next after end of stream")
	}
	v, next, ok, err := ctx.cur.TryRecv()
	if err != nil {
		return nil, err
	}
	if !ok {
		ctx.cur = nil
		return endOfStream[T](), nil
	}
	ctx.cur = next
	return kont.Right[struct{}, T](v), nil
}

// DispatchConsumeWait handles Next by blocking on the condition
// variable of the current cell (core Recv). Used by ExecConsume,
// where parking the goroutine is the desired behavior.
func (Next[T]) DispatchConsumeWait(ctx *consumeContext[T]) kont.Resumed {
	if ctx.cur == nil {
		panic("shot: next after end of stream")
	}
	v, next, ok := ctx.cur.Recv()
	if !ok {
		ctx.cur = nil
		return endOfStream[T]()
	}
	ctx.cur = next
	return kont.Right[struct{}, T](v)
}
