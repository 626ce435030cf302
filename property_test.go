// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot_test

import (
	"reflect"
	"testing"
	"testing/quick"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/shot"
)

// TestPropertyStreamFIFO proves that for any arbitrarily generated sequence
// of integers, the chained stream guarantees strict FIFO delivery without
// loss, duplication, or reordering.
func TestPropertyStreamFIFO(t *testing.T) {
	// The property function receives an arbitrary slice of integers.
	propertyFIFO := func(payload []int) bool {
		// Producer: iterates through the payload, emitting each element.
		producer := shot.Loop(payload, func(s []int) kont.Eff[kont.Either[[]int, struct{}]] {
			if len(s) == 0 {
				// Signal end of payload
				return shot.EndDone[int](kont.Right[[]int, struct{}](struct{}{}))
			}
			// Emit the head, loop on the tail
			return shot.EmitThen(s[0], kont.Pure(kont.Left[[]int, struct{}](s[1:])))
		})

		// Consumer: collects elements until the producer ends the stream.
		consumer := shot.Loop(make([]int, 0, len(payload)), func(acc []int) kont.Eff[kont.Either[[]int, []int]] {
			return shot.NextBranch(
				// Item: more data
				func(n int) kont.Eff[kont.Either[[]int, []int]] {
					return kont.Pure(kont.Left[[]int, []int](append(acc, n)))
				},
				// End: stream closed
				func() kont.Eff[kont.Either[[]int, []int]] {
					return kont.Pure(kont.Right[[]int, []int](acc))
				},
			)
		})

		// Run the stream pair.
		_, received := shot.Run[int, struct{}, []int](producer, consumer)

		// Verification: the received sequence must exactly match the sent payload.
		// Use reflect.DeepEqual to correctly handle empty vs nil slices.
		if len(payload) == 0 && len(received) == 0 {
			return true
		}
		return reflect.DeepEqual(payload, received)
	}

	// testing/quick generates arbitrary slices and checks the property.
	if err := quick.Check(propertyFIFO, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyErrorShortCircuit proves that an error thrown at any arbitrary
// point in a stream protocol always cleanly short-circuits the protocol and
// returns the exact error value as the Left branch of the Either result.
func TestPropertyErrorShortCircuit(t *testing.T) {
	propertyError := func(throwAt uint) bool {
		throwMsg := "forced_error"
		n := throwAt % 3

		producer := shot.ExprLoop(uint(0), func(i uint) kont.Expr[kont.Either[uint, string]] {
			if i == n {
				// Eager error short-circuit: map ThrowError to the expected type
				throwEff := kont.ThrowError[string, string](throwMsg)
				mappedThrow := kont.Map(throwEff, func(s string) kont.Either[uint, string] {
					return kont.Right[uint, string](s)
				})
				return shot.Reify(mappedThrow)
			}
			return shot.ExprEmitThen(i, kont.ExprReturn(kont.Left[uint, string](i+1)))
		})

		// evaluate using StepError and AdvanceProduceError until completion
		result, susp := shot.StepError[string, string](producer)

		p, _ := shot.Pipe[uint]()

		for susp != nil {
			var err error
			result, susp, err = shot.AdvanceProduceError[uint, string](p, susp)
			if err != nil {
				continue
			}
		}

		errVal, isErr := result.GetLeft()
		return isErr && errVal == throwMsg
	}

	if err := quick.Check(propertyError, nil); err != nil {
		t.Error(err)
	}
}
