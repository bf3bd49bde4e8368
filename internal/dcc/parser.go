package dcc

/********************************************************************************
 *
 * Purpose:	Structural decode of a validated frame into one Packet
 *		variant. Dispatch tries each variant's recogniser in a
 *		fixed order and returns the first success; a byte pattern
 *		that matches no recogniser is a silent "not this variant"
 *		miss at every step, and dcc.Parse reports overall failure
 *		only once every recogniser has been tried.
 *
 *******************************************************************************/

// Parse decodes a validated frame (bytes, without the trailing checksum
// byte — callers run Validate first and pass bytes[:len-1]) into a Packet.
// It reports false if bytes matches no known variant.
//
// SpeedAndDirectionForLocomotive instructions are decoded in the default,
// non-FL speed-byte convention; use ParseFL for decoders configured with
// the FL-in-speed-byte CV flag set.
func Parse(bytes []byte) (Packet, bool) {
	return parseFrame(bytes, false)
}

// ParseFL behaves exactly like Parse, except that
// SpeedAndDirectionForLocomotive instructions are decoded in FL-in-speed-byte
// mode (see ParseSpeedAndDirectionForLocomotiveFL). Which mode applies is a
// CV-configured decoder property, not something derivable from the bytes
// themselves, so it is exposed here as an explicit parameter rather than
// being guessed from the frame — per spec.md §1's "only its effect on
// packet interpretation... is exposed as an input flag".
func ParseFL(bytes []byte) (Packet, bool) {
	return parseFrame(bytes, true)
}

func parseFrame(bytes []byte, flMode bool) (Packet, bool) {
	if p, ok := parseSpeedAndDirectionForLocomotive(bytes, flMode); ok {
		return p, true
	}
	if ok := parseResetForAllDecoders(bytes); ok {
		return Packet{Tag: TagResetForAllDecoders}, true
	}
	if ok := parseIdleForAllDecoders(bytes); ok {
		return Packet{Tag: TagIdleForAllDecoders}, true
	}
	if p, ok := parseBroadcastStopForAllDecoders(bytes); ok {
		return p, true
	}
	if p, ok := parseResetForMultiFunctionDecoder(bytes); ok {
		return p, true
	}
	if p, ok := parseHardResetForMultiFunctionDecoder(bytes); ok {
		return p, true
	}
	if p, ok := parseFactoryTestInstruction(bytes); ok {
		return p, true
	}
	if p, ok := parseSetDecoderFlags(bytes); ok {
		return p, true
	}
	if p, ok := parseSetExtendedAddressing(bytes); ok {
		return p, true
	}
	if p, ok := parseDecoderAcknowledgementRequest(bytes); ok {
		return p, true
	}
	if p, ok := parseConsistControl(bytes); ok {
		return p, true
	}
	if p, ok := parseSpeedStep128Control(bytes); ok {
		return p, true
	}
	if p, ok := parseRestrictedSpeedStep(bytes); ok {
		return p, true
	}
	if p, ok := parseAnalogFunctionGroup(bytes); ok {
		return p, true
	}
	if p, ok := parseExtendedSpeedAndDirection(bytes); ok {
		return p, true
	}
	if p, ok := parseFunctionGroupOne(bytes); ok {
		return p, true
	}
	if p, ok := parseFunctionGroupTwoHigh(bytes); ok {
		return p, true
	}
	if p, ok := parseFunctionGroupTwoLow(bytes); ok {
		return p, true
	}
	if p, ok := parseF13F20(bytes); ok {
		return p, true
	}
	if p, ok := parseF21F28(bytes); ok {
		return p, true
	}
	if p, ok := parseBinaryStateShortForm(bytes); ok {
		return p, true
	}
	if p, ok := parseBinaryStateLongForm(bytes); ok {
		return p, true
	}
	return Packet{}, false
}

// parseExtendedAddress implements spec.md §4.5's address decoding: a
// 14-bit address when the first byte starts with 11 (excluding the
// reserved 0xFF), otherwise a 7-bit address consuming one byte.
func parseExtendedAddress(bytes []byte) (addr Address, size int, ok bool) {
	if len(bytes) < 1 {
		return 0, 0, false
	}
	if bytes[0]&0xC0 == 0xC0 && bytes[0] != 0xFF {
		if len(bytes) < 2 {
			return 0, 0, false
		}
		return Address(uint16(bytes[0]&0x3F)<<8 | uint16(bytes[1])), 2, true
	}
	return Address(bytes[0]), 1, true
}

// decodeSpeed4Bit implements spec.md §4.5's 4-bit (FL-control) speed table.
func decodeSpeed4Bit(raw uint8) (speed uint8, emergencyStop bool) {
	switch raw {
	case 0:
		return 0, false
	case 1:
		return 0, true
	default:
		return raw - 1, false
	}
}

// decodeSpeed5Bit implements spec.md §4.5's 5-bit speed table.
func decodeSpeed5Bit(raw uint8) (speed uint8, emergencyStop, directionMayBeIgnored bool) {
	switch raw {
	case 0:
		return 0, false, false
	case 1:
		return 0, false, true
	case 2:
		return 0, true, false
	case 3:
		return 0, true, true
	default:
		return raw - 3, false, false
	}
}

// decodeSpeed7Bit implements spec.md §4.5's 7-bit (128-step) speed table.
func decodeSpeed7Bit(raw uint8) (speed uint8, emergencyStop bool) {
	switch raw {
	case 0:
		return 0, false
	case 1:
		return 0, true
	default:
		return raw - 1, false
	}
}

func parseSpeedAndDirectionForLocomotive(bytes []byte, flMode bool) (Packet, bool) {
	if len(bytes) < 2 {
		return Packet{}, false
	}
	if bytes[1]&0xC0 != 0x40 {
		return Packet{}, false
	}
	// Address 0x00 is the reserved broadcast address: the same instruction
	// byte layout addressed there is BroadcastStopForAllDecoders instead.
	if bytes[0]&0x80 != 0 || bytes[0] == 0x00 {
		return Packet{}, false
	}
	p := SpeedAndDirectionForLocomotive{
		Address:   Address(bytes[0] & 0x7F),
		Direction: directionFromBit(bytes[1], 0x20),
		FLControl: flMode,
	}
	if flMode {
		p.FL = bytes[1]&0x10 != 0
		p.Speed4Bit, p.EmergencyStop = decodeSpeed4Bit(bytes[1] & 0x0F)
	} else {
		p.Speed5Bit, p.EmergencyStop, p.DirectionMayBeIgnored = decodeSpeed5Bit(((bytes[1] & 0x0F) << 1) | ((bytes[1] & 0x10) >> 4))
	}
	return Packet{Tag: TagSpeedAndDirectionForLocomotive, SpeedAndDirectionForLocomotive: p}, true
}

// ParseSpeedAndDirectionForLocomotiveFL parses a single
// SpeedAndDirectionForLocomotive instruction byte pair in FL-in-speed-byte
// mode, for callers that only need this one variant rather than the full
// Parse/ParseFL dispatch chain. It is the same recogniser ParseFL reaches
// for this tag.
func ParseSpeedAndDirectionForLocomotiveFL(bytes []byte) (Packet, bool) {
	return parseSpeedAndDirectionForLocomotive(bytes, true)
}

func directionFromBit(b byte, mask byte) Direction {
	if b&mask != 0 {
		return Forward
	}
	return Backward
}

func parseResetForAllDecoders(bytes []byte) bool {
	return len(bytes) == 2 && bytes[0] == 0x00 && bytes[1] == 0x00
}

func parseIdleForAllDecoders(bytes []byte) bool {
	return len(bytes) == 2 && bytes[0] == 0xFF && bytes[1] == 0x00
}

func parseBroadcastStopForAllDecoders(bytes []byte) (Packet, bool) {
	if len(bytes) < 2 {
		return Packet{}, false
	}
	if bytes[0] != 0x00 || bytes[1]&0xCE != 0x40 {
		return Packet{}, false
	}
	p := BroadcastStopForAllDecoders{
		Direction:             directionFromBit(bytes[1], 0x20),
		DirectionMayBeIgnored: bytes[1]&0x10 != 0,
	}
	if bytes[1]&1 != 0 {
		p.Kind = BroadcastShutdown
	} else {
		p.Kind = BroadcastStop
	}
	return Packet{Tag: TagBroadcastStopForAllDecoders, BroadcastStopForAllDecoders: p}, true
}

func parseResetForMultiFunctionDecoder(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+1 {
		return Packet{}, false
	}
	if bytes[size] != 0x00 {
		return Packet{}, false
	}
	return Packet{Tag: TagResetForMultiFunctionDecoder, ResetForMultiFunctionDecoder: ResetForMultiFunctionDecoder{Address: addr}}, true
}

func parseHardResetForMultiFunctionDecoder(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+1 {
		return Packet{}, false
	}
	if bytes[size] != 0x01 {
		return Packet{}, false
	}
	return Packet{Tag: TagHardResetForMultiFunctionDecoder, HardResetForMultiFunctionDecoder: HardResetForMultiFunctionDecoder{Address: addr}}, true
}

func parseFactoryTestInstruction(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) <= size {
		return Packet{}, false
	}
	if bytes[size]&0xFE != 0x02 {
		return Packet{}, false
	}
	p := FactoryTestInstruction{Address: addr, Set: bytes[size]&1 != 0}
	if size+1 < len(bytes) {
		p.DataExists = true
		p.Data = bytes[size+1]
	}
	return Packet{Tag: TagFactoryTestInstruction, FactoryTestInstruction: p}, true
}

func parseSetDecoderFlags(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+2 {
		return Packet{}, false
	}
	if bytes[size]&0xFE != 0x06 {
		return Packet{}, false
	}
	instruction := DecoderFlagsInstruction(bytes[size+1] >> 4)
	switch instruction {
	case Disable111, DisableDecoderAckRequest, ActivateBiDi, SetBiDi, Set111, Accept111:
	default:
		return Packet{}, false
	}
	p := SetDecoderFlags{
		Address:     addr,
		Set:         bytes[size]&1 != 0,
		Subaddress:  bytes[size+1] & 0x07,
		Instruction: instruction,
	}
	return Packet{Tag: TagSetDecoderFlags, SetDecoderFlags: p}, true
}

func parseSetExtendedAddressing(bytes []byte) (Packet, bool) {
	if len(bytes) < 2 {
		return Packet{}, false
	}
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+1 {
		return Packet{}, false
	}
	if bytes[size]&0xFE != 0x0A {
		return Packet{}, false
	}
	return Packet{Tag: TagSetExtendedAddressing, SetExtendedAddressing: SetExtendedAddressing{Address: addr, Set: bytes[size]&1 != 0}}, true
}

func parseDecoderAcknowledgementRequest(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+1 {
		return Packet{}, false
	}
	if bytes[size]&0xFE != 0x0E {
		return Packet{}, false
	}
	return Packet{Tag: TagDecoderAcknowledgementRequest, DecoderAcknowledgementRequest: DecoderAcknowledgementRequest{Address: addr, Set: bytes[size]&1 != 0}}, true
}

func parseConsistControl(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+2 {
		return Packet{}, false
	}
	if bytes[size]&0xF0 != 0x10 {
		return Packet{}, false
	}
	var dir Direction
	switch bytes[size] & 0x0F {
	case 2:
		dir = Forward
	case 3:
		dir = Backward
	default:
		return Packet{}, false
	}
	p := ConsistControl{
		Address:        addr,
		Direction:      dir,
		ConsistAddress: ConsistAddress(bytes[size+1] & 0x7F),
	}
	return Packet{Tag: TagConsistControl, ConsistControl: p}, true
}

func parseSpeedStep128Control(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+2 {
		return Packet{}, false
	}
	if bytes[size] != 0x3F {
		return Packet{}, false
	}
	p := SpeedStep128Control{Address: addr, Direction: directionFromBit(bytes[size+1], 0x80)}
	p.Speed, p.EmergencyStop = decodeSpeed7Bit(bytes[size+1] & 0x7F)
	return Packet{Tag: TagSpeedStep128Control, SpeedStep128Control: p}, true
}

// The remaining recognisers cover variants spec.md §4.5 allows deferring
// (restricted speed, analog function, speed+direction for multi-function
// decoders, function groups 1/2/F13-F20/F21-F28, binary state long/short).
// original_source's retrieved revision of okdcc predates these, so they
// are implemented directly from the NMRA S-9.2.1 Advanced Operations /
// Feature Expansion command-byte prefixes named in spec.md's closing
// paragraph, in the same recogniser style as the variants above.

func parseRestrictedSpeedStep(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+2 {
		return Packet{}, false
	}
	if bytes[size] != 0x38 {
		return Packet{}, false
	}
	p := RestrictedSpeedStep{Address: addr, Direction: directionFromBit(bytes[size+1], 0x80)}
	p.Speed, p.EmergencyStop = decodeSpeed7Bit(bytes[size+1] & 0x7F)
	return Packet{Tag: TagRestrictedSpeedStep, RestrictedSpeedStep: p}, true
}

func parseAnalogFunctionGroup(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+2 {
		return Packet{}, false
	}
	if bytes[size] != 0x3D {
		return Packet{}, false
	}
	p := AnalogFunctionGroup{Address: addr, Output: bytes[size+1]}
	if size+2 < len(bytes) {
		p.Value = bytes[size+2]
	}
	return Packet{Tag: TagAnalogFunctionGroup, AnalogFunctionGroup: p}, true
}

func parseExtendedSpeedAndDirection(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || size != 2 || len(bytes) < size+1 {
		return Packet{}, false
	}
	if bytes[size]&0xC0 != 0x40 {
		return Packet{}, false
	}
	p := ExtendedSpeedAndDirection{Address: addr, Direction: directionFromBit(bytes[size], 0x20)}
	p.Speed5Bit, p.EmergencyStop, p.DirectionMayBeIgnored = decodeSpeed5Bit(((bytes[size] & 0x0F) << 1) | ((bytes[size] & 0x10) >> 4))
	return Packet{Tag: TagExtendedSpeedAndDirection, ExtendedSpeedAndDirection: p}, true
}

func parseFunctionGroupOne(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+1 {
		return Packet{}, false
	}
	if bytes[size]&0xE0 != 0x80 {
		return Packet{}, false
	}
	b := bytes[size]
	p := FunctionGroupOne{
		Address: addr,
		FL:      b&0x10 != 0,
		F4:      b&0x08 != 0,
		F3:      b&0x04 != 0,
		F2:      b&0x02 != 0,
		F1:      b&0x01 != 0,
	}
	return Packet{Tag: TagFunctionGroupOne, FunctionGroupOne: p}, true
}

func parseFunctionGroupTwoHigh(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+1 {
		return Packet{}, false
	}
	if bytes[size]&0xF0 != 0xB0 {
		return Packet{}, false
	}
	b := bytes[size]
	p := FunctionGroupTwoHigh{Address: addr, F8: b&0x08 != 0, F7: b&0x04 != 0, F6: b&0x02 != 0, F5: b&0x01 != 0}
	return Packet{Tag: TagFunctionGroupTwoHigh, FunctionGroupTwoHigh: p}, true
}

func parseFunctionGroupTwoLow(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+1 {
		return Packet{}, false
	}
	if bytes[size]&0xF0 != 0xA0 {
		return Packet{}, false
	}
	b := bytes[size]
	p := FunctionGroupTwoLow{Address: addr, F12: b&0x08 != 0, F11: b&0x04 != 0, F10: b&0x02 != 0, F9: b&0x01 != 0}
	return Packet{Tag: TagFunctionGroupTwoLow, FunctionGroupTwoLow: p}, true
}

func parseF13F20(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+2 {
		return Packet{}, false
	}
	if bytes[size] != 0xDE {
		return Packet{}, false
	}
	return Packet{Tag: TagF13F20, F13F20: F13F20{Address: addr, Mask: bytes[size+1]}}, true
}

func parseF21F28(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+2 {
		return Packet{}, false
	}
	if bytes[size] != 0xDF {
		return Packet{}, false
	}
	return Packet{Tag: TagF21F28, F21F28: F21F28{Address: addr, Mask: bytes[size+1]}}, true
}

func parseBinaryStateShortForm(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+2 {
		return Packet{}, false
	}
	if bytes[size] != 0xC0 {
		return Packet{}, false
	}
	data := bytes[size+1]
	p := BinaryStateShortForm{Address: addr, State: data&0x80 != 0, BinaryStateAddress: data & 0x7F}
	return Packet{Tag: TagBinaryStateShortForm, BinaryStateShortForm: p}, true
}

func parseBinaryStateLongForm(bytes []byte) (Packet, bool) {
	addr, size, ok := parseExtendedAddress(bytes)
	if !ok || len(bytes) < size+3 {
		return Packet{}, false
	}
	if bytes[size] != 0xC1 {
		return Packet{}, false
	}
	low := bytes[size+1]
	high := bytes[size+2]
	p := BinaryStateLongForm{
		Address:            addr,
		State:              low&0x80 != 0,
		BinaryStateAddress: uint16(high)<<7 | uint16(low&0x7F),
	}
	return Packet{Tag: TagBinaryStateLongForm, BinaryStateLongForm: p}, true
}
