package dcclog

import "github.com/okdcc-go/dccrx/internal/dcc"

// Hooks adapts a Logger into dcc.ErrorHook and dcc.DebugHook, so a Decoder
// can report its activity through the same structured logger as the rest
// of dccrx.
type Hooks struct {
	Log Logger
}

func (h Hooks) DecodeError(stage string, detail string) {
	h.Log.Warn("decode error", "stage", stage, "detail", detail)
}

func (h Hooks) BitClassified(bit byte) {
	h.Log.Debug("bit classified", "bit", bit)
}

func (h Hooks) FrameCommitted(frame dcc.Frame) {
	h.Log.Debug("frame committed", "frame", dcc.RenderFrame(frame))
}

func (h Hooks) PacketDecoded(packet dcc.Packet) {
	h.Log.Info("packet decoded", "packet", dcc.RenderPacket(packet))
}
