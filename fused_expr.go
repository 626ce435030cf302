// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is the pre-allocated terminal frame shared by all
// fused constructors. The stream operations themselves are generic in
// the element type and cannot be pre-boxed the way non-generic
// operations would be.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprEmitThen sends one element and then continues with next.
// Fuses ExprPerform(Emit[T]{Value: v}) + ExprThen.
func ExprEmitThen[T, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Emit[T]{Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprEndDone closes the stream and returns a.
// Fuses ExprPerform(End[T]{}) + ExprThen + ExprReturn.
func ExprEndDone[T, A any](a A) kont.Expr[A] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(a), Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = End[T]{}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[A](ef)
}

// ExprEndThen closes the stream and continues with next.
// Fuses ExprPerform(End[T]{}) + ExprThen.
func ExprEndThen[T, B any](next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = End[T]{}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func nextBranchUnwind[T, A any](data, data2, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	onItem := data.(func(T) kont.Expr[A])
	onEnd := data2.(func() kont.Expr[A])
	e := current.(kont.Either[struct{}, T])
	var result kont.Expr[A]
	if v, ok := e.GetRight(); ok {
		result = onItem(v)
	} else {
		result = onEnd()
	}
	return kont.Erased(result.Value), result.Frame
}

// ExprNextBranch waits for the next element and calls onItem with it,
// or onEnd once the producer has closed the stream.
// Fuses ExprPerform(Next[T]{}) + ExprBind + Either branch.
func ExprNextBranch[T, A any](onItem func(T) kont.Expr[A], onEnd func() kont.Expr[A]) kont.Expr[A] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = onItem
	bf.Data2 = onEnd
	bf.Unwind = nextBranchUnwind[T, A]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Next[T]{}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[A](ef)
}
