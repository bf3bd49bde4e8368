package monitor

import (
	"strconv"

	"github.com/okdcc-go/dccrx/internal/dcc"
)

// Hooks adapts Metrics and a Hub into dcc.ErrorHook and dcc.DebugHook, so
// a running Decoder's activity is observable over /metrics and /ws
// without the decoder itself knowing monitor exists.
type Hooks struct {
	Metrics *Metrics
	Hub     *Hub
}

func (h Hooks) DecodeError(stage string, detail string) {
	switch stage {
	case "classifier":
		h.Metrics.ClassifierFailures.Inc()
	case "validator":
		h.Metrics.FrameValidationErrors.Inc()
	case "parser":
		h.Metrics.ParserFailures.Inc()
	}
}

func (h Hooks) BitClassified(bit byte) {
	h.Metrics.BitsClassified.WithLabelValues(strconv.Itoa(int(bit))).Inc()
}

func (h Hooks) FrameCommitted(frame dcc.Frame) {
	h.Metrics.FramesCommitted.Inc()
}

func (h Hooks) PacketDecoded(packet dcc.Packet) {
	h.Metrics.PacketsDecoded.WithLabelValues(tagName(packet.Tag)).Inc()
	if h.Hub != nil {
		h.Hub.Broadcast(dcc.RenderPacket(packet))
	}
}

func tagName(tag dcc.PacketTag) string {
	switch tag {
	case dcc.TagSpeedAndDirectionForLocomotive:
		return "SpeedAndDirectionForLocomotive"
	case dcc.TagResetForAllDecoders:
		return "ResetForAllDecoders"
	case dcc.TagIdleForAllDecoders:
		return "IdleForAllDecoders"
	case dcc.TagBroadcastStopForAllDecoders:
		return "BroadcastStopForAllDecoders"
	case dcc.TagResetForMultiFunctionDecoder:
		return "ResetForMultiFunctionDecoder"
	case dcc.TagHardResetForMultiFunctionDecoder:
		return "HardResetForMultiFunctionDecoder"
	case dcc.TagFactoryTestInstruction:
		return "FactoryTestInstruction"
	case dcc.TagSetDecoderFlags:
		return "SetDecoderFlags"
	case dcc.TagSetExtendedAddressing:
		return "SetExtendedAddressing"
	case dcc.TagDecoderAcknowledgementRequest:
		return "DecoderAcknowledgementRequest"
	case dcc.TagConsistControl:
		return "ConsistControl"
	case dcc.TagSpeedStep128Control:
		return "SpeedStep128Control"
	case dcc.TagRestrictedSpeedStep:
		return "RestrictedSpeedStep"
	case dcc.TagAnalogFunctionGroup:
		return "AnalogFunctionGroup"
	case dcc.TagExtendedSpeedAndDirection:
		return "ExtendedSpeedAndDirection"
	case dcc.TagFunctionGroupOne:
		return "FunctionGroupOne"
	case dcc.TagFunctionGroupTwoHigh:
		return "FunctionGroupTwoHigh"
	case dcc.TagFunctionGroupTwoLow:
		return "FunctionGroupTwoLow"
	case dcc.TagF13F20:
		return "F13F20"
	case dcc.TagF21F28:
		return "F21F28"
	case dcc.TagBinaryStateShortForm:
		return "BinaryStateShortForm"
	case dcc.TagBinaryStateLongForm:
		return "BinaryStateLongForm"
	default:
		return "Unknown"
	}
}
