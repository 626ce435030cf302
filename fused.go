// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

import (
	"code.hybscloud.com/kont"
)

// EmitThen sends one element and then continues with next.
// Fuses Perform(Emit[T]{Value: v}) + Then.
func EmitThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Emit[T]{Value: v}), next)
}

// EndDone closes the stream and returns a.
// Fuses Perform(End[T]{}) + Then + Pure.
func EndDone[T, A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(End[T]{}), kont.Pure(a))
}

// EndThen closes the stream and continues with next. Useful when the
// producer protocol has work left after its last element.
// Fuses Perform(End[T]{}) + Then.
func EndThen[T, B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(End[T]{}), next)
}

// NextBranch waits for the next element and calls onItem with it, or
// onEnd once the producer has closed the stream.
// Fuses Perform(Next[T]{}) + Bind + Either branch.
func NextBranch[T, A any](onItem func(T) kont.Eff[A], onEnd func() kont.Eff[A]) kont.Eff[A] {
	return kont.Bind(kont.Perform(Next[T]{}), func(e kont.Either[struct{}, T]) kont.Eff[A] {
		if v, ok := e.GetRight(); ok {
			return onItem(v)
		}
		return onEnd()
	})
}
