// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

// msg is the payload carried by each one-shot link of a multi-shot
// stream: one element plus the receiver capability for the rest of the
// stream. A nil *msg is the close marker.
type msg[T any] struct {
	val  T
	next *MultiReceiver[T]
}

// MultiSender is the producer capability of a multi-shot stream.
// Each Send consumes it and returns the capability for the next
// element; Close consumes it and terminates the stream.
type MultiSender[T any] struct {
	s *Sender[*msg[T]]
}

// MultiReceiver is the consumer capability of a multi-shot stream.
// Each Recv consumes it and yields the capability for the rest of
// the stream, until the close marker is observed.
type MultiReceiver[T any] struct {
	r *Receiver[*msg[T]]
}

// NewMulti creates a multi-shot stream and returns its initial
// capability pair. The stream is a chain of one-shot channels: every
// transfer carries the element together with the receiver capability
// for the next link, so elements are observed in exactly the order
// they were sent.
func NewMulti[T any]() (*MultiSender[T], *MultiReceiver[T]) {
	s, r := New[*msg[T]]()
	return &MultiSender[T]{s: s}, &MultiReceiver[T]{r: r}
}

// Serial returns the serial number of the stream's current link.
func (m *MultiSender[T]) Serial() Serial {
	return m.s.Serial()
}

// Serial returns the serial number of the stream's current link.
func (m *MultiReceiver[T]) Serial() Serial {
	return m.r.Serial()
}

// Send transfers v and returns the capability for the next element.
// The receiving side obtains the matching next receiver together with
// v. Send consumes the capability and never blocks; sending on a spent
// capability panics via the underlying one-shot Sender.
func (m *MultiSender[T]) Send(v T) *MultiSender[T] {
	ns, nr := New[*msg[T]]()
	m.s.Send(&msg[T]{val: v, next: &MultiReceiver[T]{r: nr}})
	return &MultiSender[T]{s: ns}
}

// Close terminates the stream. It consumes the capability; no further
// elements can be sent. The consumer observes the close strictly after
// every element sent before it, because the marker travels through the
// same chained cell as the data.
func (m *MultiSender[T]) Close() {
	m.s.Send(nil)
}

// Recv waits for the next element. It returns the element, the
// capability for the rest of the stream, and true; or the zero value,
// nil, and false once the producer has closed. Recv consumes the
// capability; the caller threads the returned receiver into the next
// call and must not call Recv again after observing the close.
func (m *MultiReceiver[T]) Recv() (T, *MultiReceiver[T], bool) {
	p := m.r.Recv()
	if p == nil {
		var zero T
		return zero, nil, false
	}
	return p.val, p.next, true
}

// TryRecv is the non-blocking variant of Recv. If no element and no
// close marker has arrived yet it returns iox.ErrWouldBlock and the
// capability stays live for a later retry.
func (m *MultiReceiver[T]) TryRecv() (T, *MultiReceiver[T], bool, error) {
	p, err := m.r.TryRecv()
	if err != nil {
		var zero T
		return zero, nil, false, err
	}
	if p == nil {
		var zero T
		return zero, nil, false, nil
	}
	return p.val, p.next, true, nil
}
