// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot_test

import (
	"fmt"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/shot"
)

func TestRunEmitCollect(t *testing.T) {
	// !int.!int.!int.end ↔ ?int*.end
	producer := shot.EmitThen(1,
		shot.EmitThen(2,
			shot.EmitThen(3,
				shot.EndDone[int]("sent"),
			),
		),
	)

	producerResult, got := shot.Run[int, string, []int](producer, collectAll[int]())
	if producerResult != "sent" {
		t.Fatalf("producer got %q, want %q", producerResult, "sent")
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("consumer got %v, want [1 2 3]", got)
	}
}

func TestRunCloseOnly(t *testing.T) {
	// end ↔ end
	producer := shot.EndDone[int]("closed")
	consumer := shot.NextBranch(
		func(n int) kont.Eff[string] {
			return kont.Pure(fmt.Sprintf("unexpected %d", n))
		},
		func() kont.Eff[string] {
			return kont.Pure("end")
		},
	)

	producerResult, consumerResult := shot.Run[int, string, string](producer, consumer)
	if producerResult != "closed" {
		t.Fatalf("producer got %q, want %q", producerResult, "closed")
	}
	if consumerResult != "end" {
		t.Fatalf("consumer got %q, want %q", consumerResult, "end")
	}
}

func TestRunEmitAllHelper(t *testing.T) {
	payload := []string{"a", "b", "c", "d"}

	count, got := shot.Run[string, int, []string](emitAll(payload), collectAll[string]())
	if count != len(payload) {
		t.Fatalf("producer sent %d, want %d", count, len(payload))
	}
	if len(got) != len(payload) {
		t.Fatalf("consumer got %d elements, want %d", len(got), len(payload))
	}
	for i, v := range got {
		if v != payload[i] {
			t.Fatalf("element %d got %q, want %q", i, v, payload[i])
		}
	}
}

func TestExecBlockingPair(t *testing.T) {
	// Exec worlds on two goroutines: the consumer parks on the condvar
	// while the producer is still emitting.
	p, c := shot.Pipe[int]()

	go func() {
		shot.ExecProduce(p, shot.EmitThen(10,
			shot.EmitThen(20, shot.EndDone[int](struct{}{})),
		))
	}()

	sum := shot.ExecConsume(c, shot.Loop(0, func(acc int) kont.Eff[kont.Either[int, int]] {
		return shot.NextBranch(
			func(n int) kont.Eff[kont.Either[int, int]] {
				return kont.Pure(kont.Left[int, int](acc + n))
			},
			func() kont.Eff[kont.Either[int, int]] {
				return kont.Pure(kont.Right[int](acc))
			},
		)
	}))
	if sum != 30 {
		t.Fatalf("consumer got %d, want 30", sum)
	}
}

func TestAttachDetach(t *testing.T) {
	// A protocol produces the first half of the stream; the raw
	// capability finishes it after Detach.
	s, r := shot.NewMulti[int]()
	p := shot.AttachProducer(s)

	shot.ExecProduce(p, shot.EmitThen(1, kont.Pure(struct{}{})))
	rest := p.Detach()
	if rest == nil {
		t.Fatal("expected live capability after Detach")
	}
	rest.Send(2).Close()

	c := shot.AttachConsumer(r)
	got := shot.ExecConsume(c, collectAll[int]())
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("consumer got %v, want [1 2]", got)
	}
}

func TestDetachAfterEndIsNil(t *testing.T) {
	p, c := shot.Pipe[int]()
	shot.ExecProduce(p, shot.EndDone[int](struct{}{}))
	if p.Detach() != nil {
		t.Fatal("expected nil capability after End")
	}

	if _, _, ok := c.Detach().Recv(); ok {
		t.Fatal("expected closed stream")
	}
}

func TestProduceDispatchUnhandledPanics(t *testing.T) {
	type bogus struct{ kont.Phantom[int] }

	p, _ := shot.Pipe[int]()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unhandled effect")
		}
		msg, ok := r.(string)
		if !ok || msg != "shot: unhandled effect in produceHandler" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	shot.ExecProduce(p, kont.Perform(bogus{}))
}

func TestConsumeDispatchUnhandledPanics(t *testing.T) {
	type bogus struct{ kont.Phantom[int] }

	_, c := shot.Pipe[int]()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unhandled effect")
		}
		msg, ok := r.(string)
		if !ok || msg != "shot: unhandled effect in consumeHandler" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	shot.ExecConsume(c, kont.Perform(bogus{}))
}

func TestEmitAfterEndPanics(t *testing.T) {
	p, _ := shot.Pipe[int]()
	shot.ExecProduce(p, shot.EndDone[int](struct{}{}))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for emit after end")
		}
		msg, ok := r.(string)
		if !ok || msg != "shot: emit after end of stream" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	shot.ExecProduce(p, shot.EmitThen(1, kont.Pure(struct{}{})))
}
