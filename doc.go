// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shot provides one-shot channels with linear single-use
// capabilities, and multi-shot streams built by chaining them.
//
// A one-shot channel transfers exactly one value from one producer
// capability to one consumer capability. A multi-shot stream layers an
// ordered, closable sequence of values on top: every transfer carries
// the capability for the rest of the stream, so ordering is enforced
// by construction rather than by a queue.
//
// # Architecture
//
//   - Transport: a single mutex-guarded slot per channel with a condition
//     variable to park the receiver. [New] creates a capability pair.
//   - Linearity: [Sender] and [Receiver] are consumed by their one
//     operation; a second use panics. [MultiSender.Send] and
//     [MultiReceiver.Recv] return the capability for the next element.
//   - Close: [MultiSender.Close] sends an end-of-stream marker through the
//     current cell, ordered strictly after every element before it.
//   - Non-blocking: [Receiver.TryRecv] and [MultiReceiver.TryRecv] return
//     [code.hybscloud.com/iox.ErrWouldBlock] without consuming the capability.
//   - Protocols: stream producers and consumers can be written as algebraic
//     effects on [code.hybscloud.com/kont], dispatched on [Producer] and
//     [Consumer] endpoints that thread the linear capability internally.
//
// # API Topologies
//
//   - Core: [New], [Sender.Send], [Receiver.Recv], [Receiver.TryRecv];
//     [NewMulti], [MultiSender.Send], [MultiSender.Close],
//     [MultiReceiver.Recv], [MultiReceiver.TryRecv].
//   - Operations: [Emit], [Next], [End], dispatched on a [Pipe] endpoint pair.
//   - Cont-world: [EmitThen], [NextBranch], [EndDone], [EndThen].
//   - Expr-world: Zero-allocation variants like [ExprEmitThen],
//     [ExprNextBranch], etc. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] and [ExprLoop] for iterative stream protocols.
//
// # Integration
//
//   - Blocking: [ExecProduce] and [ExecConsume] evaluate a protocol to
//     completion; a pending receive parks on the condition variable, so no
//     CPU is burned and no scheduler fairness is assumed.
//   - Stepping: [Step] and [AdvanceProduce]/[AdvanceConsume] evaluate one
//     effect at a time; a not-yet-filled cell reports
//     [code.hybscloud.com/iox.ErrWouldBlock] and the step may be retried.
//   - Interleaved: [Run] and [RunExpr] drive a producer/consumer pair on the
//     calling goroutine with adaptive backoff.
//   - Errors: [ExecProduceError], [ExecConsumeError], [RunError] and
//     variants short-circuit on Throw, returning [code.hybscloud.com/kont.Either].
//
// # Example
//
//	s, r := shot.New[int]()
//	go func() { s.Send(10) }()
//	n := r.Recv() // 10; s and r are now spent
//
//	producer := shot.EmitThen(1, shot.EmitThen(2, shot.EndDone[int]("sent")))
//	consumer := shot.Loop(0, func(sum int) kont.Eff[kont.Either[int, int]] {
//		return shot.NextBranch(
//			func(n int) kont.Eff[kont.Either[int, int]] {
//				return kont.Pure(kont.Left[int, int](sum + n))
//			},
//			func() kont.Eff[kont.Either[int, int]] {
//				return kont.Pure(kont.Right[int, int](sum))
//			},
//		)
//	})
//	_, sum := shot.Run[int, string, int](producer, consumer) // sum == 3
package shot
