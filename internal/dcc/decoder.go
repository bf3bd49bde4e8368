package dcc

/********************************************************************************
 *
 * Purpose:	C6 façade: drive a Classifier and a Framer from a stream of
 *		edge timestamps, validate and parse each committed frame,
 *		and report one Status per timestamp fed in.
 *
 *******************************************************************************/

// Decoder turns a stream of track voltage edge timestamps into a stream of
// decoded Packets. It owns one Classifier and one Framer and is not safe
// for concurrent use — one goroutine should own a Decoder and feed it from
// a RingBuffer drained in that same goroutine.
type Decoder struct {
	classifier *Classifier
	framer     *Framer
	flMode     bool

	errorHook ErrorHook
	debugHook DebugHook
}

// Option configures a Decoder at construction time.
type Option func(*Decoder)

// WithErrorHook installs h to receive recoverable decode failures.
func WithErrorHook(h ErrorHook) Option {
	return func(d *Decoder) { d.errorHook = h }
}

// WithDebugHook installs h to receive intermediate decode results.
func WithDebugHook(h DebugHook) Option {
	return func(d *Decoder) { d.debugHook = h }
}

// WithFLMode selects FL-in-speed-byte decoding for
// SpeedAndDirectionForLocomotive instructions (see ParseFL), matching a
// decoder's CV29 FL-control bit. Off by default.
func WithFLMode(flMode bool) Option {
	return func(d *Decoder) { d.flMode = flMode }
}

// NewDecoder returns a Decoder ready to receive its first timestamp.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		classifier: NewClassifier(),
		framer:     NewFramer(),
		errorHook:  noopErrorHook{},
		debugHook:  noopDebugHook{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode feeds one edge timestamp through classification, framing,
// validation and parsing.
//
//   - StatusContinue: the timestamp was consumed, no frame completed yet.
//     This is also what Decode returns when the classifier itself reports
//     a recoverable failure (an out-of-band half-bit period pair) — the
//     classifier has already resynced by sliding its retained window, so
//     from the façade's point of view decoding simply continues. The
//     error hook is still notified.
//   - StatusFailure: a frame completed framing but failed validation or
//     matched no known packet variant, or the framer itself hit a fatal
//     condition (overflow, short preamble). The returned Packet is the
//     zero value.
//   - StatusSuccess: a frame was validated and parsed; Packet holds the
//     result.
func (d *Decoder) Decode(t Timestamp) (Status, Packet) {
	bit, status := d.classifier.Feed(t)
	switch status {
	case StatusContinue:
		return StatusContinue, Packet{}
	case StatusFailure:
		d.errorHook.DecodeError("classifier", "half-bit period pair outside both timing bands")
		return StatusContinue, Packet{}
	}

	d.debugHook.BitClassified(bit)

	frameStatus, frame := d.framer.Feed(bit)
	switch frameStatus {
	case StatusContinue:
		return StatusContinue, Packet{}
	case StatusFailure:
		d.errorHook.DecodeError("framer", "preamble too short or frame buffer overflow")
		return StatusFailure, Packet{}
	}

	d.debugHook.FrameCommitted(frame)

	data := frame.Data()
	if !Validate(data) {
		d.errorHook.DecodeError("validator", "checksum mismatch")
		return StatusFailure, Packet{}
	}

	parse := Parse
	if d.flMode {
		parse = ParseFL
	}
	packet, ok := parse(data[:len(data)-1])
	if !ok {
		d.errorHook.DecodeError("parser", "frame matched no known packet variant")
		return StatusFailure, Packet{}
	}

	d.debugHook.PacketDecoded(packet)
	return StatusSuccess, packet
}
