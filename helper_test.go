// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot_test

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/shot"
)

// execProduceExpr drives a producer protocol to completion via
// Step+AdvanceProduce loop. Producer dispatch never reports
// ErrWouldBlock, so no retry is needed; the loop shape mirrors
// execConsumeExpr for symmetry.
func execProduceExpr[T, R any](p *shot.Producer[T], protocol kont.Expr[R]) R {
	result, susp := shot.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = shot.AdvanceProduce(p, susp)
		if err != nil {
			continue
		}
	}
	return result
}

// execConsumeExpr drives a consumer protocol to completion via
// Step+AdvanceConsume loop. Retries on iox.ErrWouldBlock (producer
// not ready yet). Used by stepping tests to exercise the non-blocking
// path.
func execConsumeExpr[T, R any](c *shot.Consumer[T], protocol kont.Expr[R]) R {
	result, susp := shot.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = shot.AdvanceConsume(c, susp)
		if err != nil {
			continue
		}
	}
	return result
}

// collectAll is a consumer protocol that appends every element to acc
// until the stream is closed, returning the collected slice.
func collectAll[T any]() kont.Eff[[]T] {
	return shot.Loop([]T(nil), func(acc []T) kont.Eff[kont.Either[[]T, []T]] {
		return shot.NextBranch(
			func(v T) kont.Eff[kont.Either[[]T, []T]] {
				return kont.Pure(kont.Left[[]T, []T](append(acc, v)))
			},
			func() kont.Eff[kont.Either[[]T, []T]] {
				return kont.Pure(kont.Right[[]T](acc))
			},
		)
	})
}

// emitAll is a producer protocol that emits every element of vs in
// order, closes the stream, and returns the count of elements sent.
func emitAll[T any](vs []T) kont.Eff[int] {
	return shot.Loop(0, func(i int) kont.Eff[kont.Either[int, int]] {
		if i == len(vs) {
			return shot.EndDone[T](kont.Right[int, int](i))
		}
		return shot.EmitThen(vs[i], kont.Pure(kont.Left[int, int](i+1)))
	})
}
