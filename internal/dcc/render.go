package dcc

import (
	"strconv"
	"strings"
)

/********************************************************************************
 *
 * Purpose:	Deterministic, allocation-obvious human-readable rendering of
 *		packets and intermediate values, for logs and the diagnostic
 *		monitor. Built field-by-field with a strings.Builder rather
 *		than encoding/json, so the output order and shape never
 *		depend on struct tag reflection and stays stable across Go
 *		versions.
 *
 *******************************************************************************/

// RenderFrame renders a committed frame as space-separated hex bytes, e.g.
// "03 2A 29".
func RenderFrame(fr Frame) string {
	var b strings.Builder
	data := fr.Data()
	for i, by := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeHexByte(&b, by)
	}
	return b.String()
}

// RenderPacket renders a decoded Packet as a single-line "Tag{field=value,
// ...}" description.
func RenderPacket(p Packet) string {
	var b strings.Builder
	switch p.Tag {
	case TagSpeedAndDirectionForLocomotive:
		v := p.SpeedAndDirectionForLocomotive
		b.WriteString("SpeedAndDirectionForLocomotive{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", direction=")
		b.WriteString(v.Direction.String())
		if v.FLControl {
			b.WriteString(", flControl=true, fl=")
			writeBool(&b, v.FL)
			b.WriteString(", speed4=")
			writeUint(&b, uint64(v.Speed4Bit))
		} else {
			b.WriteString(", speed5=")
			writeUint(&b, uint64(v.Speed5Bit))
			b.WriteString(", directionMayBeIgnored=")
			writeBool(&b, v.DirectionMayBeIgnored)
		}
		b.WriteString(", emergencyStop=")
		writeBool(&b, v.EmergencyStop)
		b.WriteByte('}')
	case TagResetForAllDecoders:
		b.WriteString("ResetForAllDecoders{}")
	case TagIdleForAllDecoders:
		b.WriteString("IdleForAllDecoders{}")
	case TagBroadcastStopForAllDecoders:
		v := p.BroadcastStopForAllDecoders
		b.WriteString("BroadcastStopForAllDecoders{kind=")
		b.WriteString(v.Kind.String())
		b.WriteString(", direction=")
		b.WriteString(v.Direction.String())
		b.WriteString(", directionMayBeIgnored=")
		writeBool(&b, v.DirectionMayBeIgnored)
		b.WriteByte('}')
	case TagResetForMultiFunctionDecoder:
		b.WriteString("ResetForMultiFunctionDecoder{address=")
		writeUint(&b, uint64(p.ResetForMultiFunctionDecoder.Address))
		b.WriteByte('}')
	case TagHardResetForMultiFunctionDecoder:
		b.WriteString("HardResetForMultiFunctionDecoder{address=")
		writeUint(&b, uint64(p.HardResetForMultiFunctionDecoder.Address))
		b.WriteByte('}')
	case TagFactoryTestInstruction:
		v := p.FactoryTestInstruction
		b.WriteString("FactoryTestInstruction{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", set=")
		writeBool(&b, v.Set)
		if v.DataExists {
			b.WriteString(", data=")
			writeHexByte(&b, v.Data)
		}
		b.WriteByte('}')
	case TagSetDecoderFlags:
		v := p.SetDecoderFlags
		b.WriteString("SetDecoderFlags{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", set=")
		writeBool(&b, v.Set)
		b.WriteString(", subaddress=")
		writeUint(&b, uint64(v.Subaddress))
		b.WriteString(", instruction=")
		writeUint(&b, uint64(v.Instruction))
		b.WriteByte('}')
	case TagSetExtendedAddressing:
		v := p.SetExtendedAddressing
		b.WriteString("SetExtendedAddressing{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", set=")
		writeBool(&b, v.Set)
		b.WriteByte('}')
	case TagDecoderAcknowledgementRequest:
		v := p.DecoderAcknowledgementRequest
		b.WriteString("DecoderAcknowledgementRequest{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", set=")
		writeBool(&b, v.Set)
		b.WriteByte('}')
	case TagConsistControl:
		v := p.ConsistControl
		b.WriteString("ConsistControl{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", direction=")
		b.WriteString(v.Direction.String())
		b.WriteString(", consistAddress=")
		writeUint(&b, uint64(v.ConsistAddress))
		b.WriteByte('}')
	case TagSpeedStep128Control:
		v := p.SpeedStep128Control
		b.WriteString("SpeedStep128Control{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", direction=")
		b.WriteString(v.Direction.String())
		b.WriteString(", speed=")
		writeUint(&b, uint64(v.Speed))
		b.WriteString(", emergencyStop=")
		writeBool(&b, v.EmergencyStop)
		b.WriteByte('}')
	case TagRestrictedSpeedStep:
		v := p.RestrictedSpeedStep
		b.WriteString("RestrictedSpeedStep{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", direction=")
		b.WriteString(v.Direction.String())
		b.WriteString(", speed=")
		writeUint(&b, uint64(v.Speed))
		b.WriteString(", emergencyStop=")
		writeBool(&b, v.EmergencyStop)
		b.WriteByte('}')
	case TagAnalogFunctionGroup:
		v := p.AnalogFunctionGroup
		b.WriteString("AnalogFunctionGroup{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", output=")
		writeHexByte(&b, v.Output)
		b.WriteString(", value=")
		writeHexByte(&b, v.Value)
		b.WriteByte('}')
	case TagExtendedSpeedAndDirection:
		v := p.ExtendedSpeedAndDirection
		b.WriteString("ExtendedSpeedAndDirection{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", direction=")
		b.WriteString(v.Direction.String())
		b.WriteString(", speed5=")
		writeUint(&b, uint64(v.Speed5Bit))
		b.WriteString(", directionMayBeIgnored=")
		writeBool(&b, v.DirectionMayBeIgnored)
		b.WriteString(", emergencyStop=")
		writeBool(&b, v.EmergencyStop)
		b.WriteByte('}')
	case TagFunctionGroupOne:
		v := p.FunctionGroupOne
		b.WriteString("FunctionGroupOne{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", fl=")
		writeBool(&b, v.FL)
		b.WriteString(", f1=")
		writeBool(&b, v.F1)
		b.WriteString(", f2=")
		writeBool(&b, v.F2)
		b.WriteString(", f3=")
		writeBool(&b, v.F3)
		b.WriteString(", f4=")
		writeBool(&b, v.F4)
		b.WriteByte('}')
	case TagFunctionGroupTwoHigh:
		v := p.FunctionGroupTwoHigh
		b.WriteString("FunctionGroupTwoHigh{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", f5=")
		writeBool(&b, v.F5)
		b.WriteString(", f6=")
		writeBool(&b, v.F6)
		b.WriteString(", f7=")
		writeBool(&b, v.F7)
		b.WriteString(", f8=")
		writeBool(&b, v.F8)
		b.WriteByte('}')
	case TagFunctionGroupTwoLow:
		v := p.FunctionGroupTwoLow
		b.WriteString("FunctionGroupTwoLow{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", f9=")
		writeBool(&b, v.F9)
		b.WriteString(", f10=")
		writeBool(&b, v.F10)
		b.WriteString(", f11=")
		writeBool(&b, v.F11)
		b.WriteString(", f12=")
		writeBool(&b, v.F12)
		b.WriteByte('}')
	case TagF13F20:
		v := p.F13F20
		b.WriteString("F13F20{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", mask=")
		writeHexByte(&b, v.Mask)
		b.WriteByte('}')
	case TagF21F28:
		v := p.F21F28
		b.WriteString("F21F28{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", mask=")
		writeHexByte(&b, v.Mask)
		b.WriteByte('}')
	case TagBinaryStateShortForm:
		v := p.BinaryStateShortForm
		b.WriteString("BinaryStateShortForm{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", state=")
		writeBool(&b, v.State)
		b.WriteString(", binaryStateAddress=")
		writeUint(&b, uint64(v.BinaryStateAddress))
		b.WriteByte('}')
	case TagBinaryStateLongForm:
		v := p.BinaryStateLongForm
		b.WriteString("BinaryStateLongForm{address=")
		writeUint(&b, uint64(v.Address))
		b.WriteString(", state=")
		writeBool(&b, v.State)
		b.WriteString(", binaryStateAddress=")
		writeUint(&b, uint64(v.BinaryStateAddress))
		b.WriteByte('}')
	default:
		b.WriteString("Unknown{}")
	}
	return b.String()
}

// RenderRingBuffer renders a ring buffer's occupancy and pending timestamps,
// oldest first, without consuming them, e.g. "cap=4 len=2 [00000040
// 000000A0]". Intended for diagnostics from the same goroutine that owns
// the buffer's consumer side; like Read and ReadMany, it is not meant to be
// called concurrently with Write from another goroutine.
func RenderRingBuffer(rb *RingBuffer) string {
	var b strings.Builder
	b.WriteString("cap=")
	writeUint(&b, uint64(rb.Capacity()))
	b.WriteString(" len=")
	n := rb.Len()
	writeUint(&b, uint64(n))
	b.WriteString(" [")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		idx := (rb.readIndex + i) % len(rb.buf)
		writeHexTimestamp(&b, rb.buf[idx])
	}
	b.WriteByte(']')
	return b.String()
}

func writeUint(b *strings.Builder, v uint64) {
	b.WriteString(strconv.FormatUint(v, 10))
}

func writeBool(b *strings.Builder, v bool) {
	if v {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
}

const hexDigits = "0123456789ABCDEF"

func writeHexByte(b *strings.Builder, v byte) {
	b.WriteByte(hexDigits[v>>4])
	b.WriteByte(hexDigits[v&0x0F])
}

func writeHexTimestamp(b *strings.Builder, t Timestamp) {
	v := uint32(t)
	for shift := 28; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(v>>uint(shift))&0x0F])
	}
}
