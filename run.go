// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run creates a stream pair, runs the producer and consumer Cont-world
// protocols, and returns both results. Interleaves execution of both
// sides on the calling goroutine using adaptive backoff (iox.Backoff)
// when the consumer is ahead of the producer. Does not spawn
// goroutines or create Go channels. The element type T cannot be
// inferred from the protocols and must be named explicitly.
func Run[T, A, B any](producer kont.Eff[A], consumer kont.Eff[B]) (A, B) {
	return RunExpr[T](Reify(producer), Reify(consumer))
}

// RunExpr creates a stream pair, runs the producer and consumer
// Expr-world protocols, and returns both results. Interleaves
// execution of both sides on the calling goroutine using adaptive
// backoff (iox.Backoff) when the consumer is ahead of the producer.
// Does not spawn goroutines or create Go channels.
func RunExpr[T, A, B any](producer kont.Expr[A], consumer kont.Expr[B]) (A, B) {
	p, c := Pipe[T]()
	resultP, suspP := Step[A](producer)
	resultC, suspC := Step[B](consumer)
	var bo iox.Backoff

	for suspP != nil || suspC != nil {
		progress := false
		if suspP != nil {
			var err error
			resultP, suspP, err = AdvanceProduce(p, suspP)
			if err == nil {
				progress = true
			}
		}
		if suspC != nil {
			var err error
			resultC, suspC, err = AdvanceConsume(c, suspC)
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
