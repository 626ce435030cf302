// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shot

// Producer is the producer-side protocol endpoint of a stream. It
// holds the current linear capability; effect dispatch threads the
// capability so protocol code never handles it directly.
type Producer[T any] struct {
	ctx produceContext[T]
}

// Consumer is the consumer-side protocol endpoint of a stream.
type Consumer[T any] struct {
	ctx consumeContext[T]
}

// Pipe creates a multi-shot stream and returns its protocol endpoint
// pair. Equivalent to NewMulti followed by AttachProducer and
// AttachConsumer on the two capabilities.
func Pipe[T any]() (*Producer[T], *Consumer[T]) {
	s, r := NewMulti[T]()
	return AttachProducer(s), AttachConsumer(r)
}

// AttachProducer wraps an existing producer capability as a protocol
// endpoint. The capability is owned by the endpoint from here on.
func AttachProducer[T any](s *MultiSender[T]) *Producer[T] {
	return &Producer[T]{ctx: produceContext[T]{cur: s}}
}

// AttachConsumer wraps an existing consumer capability as a protocol
// endpoint. The capability is owned by the endpoint from here on.
func AttachConsumer[T any](r *MultiReceiver[T]) *Consumer[T] {
	return &Consumer[T]{ctx: consumeContext[T]{cur: r}}
}

// Detach returns the endpoint's current capability and releases
// ownership back to the caller. Returns nil if the stream has been
// ended. The endpoint must not be used afterwards.
func (p *Producer[T]) Detach() *MultiSender[T] {
	cur := p.ctx.cur
	p.ctx.cur = nil
	return cur
}

// Detach returns the endpoint's current capability and releases
// ownership back to the caller. Returns nil if the close marker has
// been observed. The endpoint must not be used afterwards.
func (c *Consumer[T]) Detach() *MultiReceiver[T] {
	cur := c.ctx.cur
	c.ctx.cur = nil
	return cur
}

// Serial returns the serial number of the stream's current link,
// or zero if the stream has been ended.
func (p *Producer[T]) Serial() Serial {
	if p.ctx.cur == nil {
		return 0
	}
	return p.ctx.cur.Serial()
}

// Serial returns the serial number of the stream's current link,
// or zero if the close marker has been observed.
func (c *Consumer[T]) Serial() Serial {
	if c.ctx.cur == nil {
		return 0
	}
	return c.ctx.cur.Serial()
}
