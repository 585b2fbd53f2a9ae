package codec

import (
	"strings"

	"github.com/mkfw/hexcraft/internal/logger"
	"github.com/mkfw/hexcraft/memimage"
)

const (
	recordData            = 0x00
	recordEOF             = 0x01
	recordExtendedSegment = 0x02
	recordExtendedLinear  = 0x04
	recordStartSegment    = 0x03
	recordStartLinear     = 0x05
)

// IntelHexMode selects which extended-address record the writer emits.
type IntelHexMode int

const (
	IntelHexAuto IntelHexMode = iota
	IntelHexExtendedLinear
	IntelHexExtendedSegment
)

// IntelHexWriteOptions configures WriteIntelHex.
type IntelHexWriteOptions struct {
	BytesPerLine byte
	Mode         IntelHexMode
}

// DefaultIntelHexWriteOptions matches the reference writer: 32 bytes per
// line, auto-selecting the extended-address record kind.
func DefaultIntelHexWriteOptions() IntelHexWriteOptions {
	return IntelHexWriteOptions{BytesPerLine: 32, Mode: IntelHexAuto}
}

// ParseIntelHex decodes an Intel-HEX byte stream into a MemoryImage.
func ParseIntelHex(input []byte) (*memimage.Image, error) {
	text := string(input)

	var segments []memimage.Segment
	var current *memimage.Segment
	var extendedAddress uint32
	eofSeen := false

	lines := strings.Split(text, "\n")
	for idx, raw := range lines {
		lineNum := idx + 1
		line := strings.TrimRight(strings.TrimSpace(raw), "\r")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if eofSeen {
			return nil, &InvalidRecordError{Line: lineNum, Message: "data after EOF record"}
		}
		if !strings.HasPrefix(line, ":") {
			return nil, &InvalidRecordError{Line: lineNum, Message: "line does not start with ':'"}
		}

		hexStr := line[1:]
		if len(hexStr) < 10 {
			return nil, &InvalidRecordError{Line: lineNum, Message: "record too short"}
		}

		bytes, err := parseHexBytes([]byte(hexStr), lineNum)
		if err != nil {
			return nil, err
		}
		if err := validateChecksum(bytes, lineNum); err != nil {
			return nil, err
		}

		byteCount := int(bytes[0])
		if len(bytes) < 5+byteCount {
			return nil, &InvalidRecordError{Line: lineNum, Message: "byte count too large for record"}
		}
		if len(bytes) != 5+byteCount {
			return nil, &InvalidRecordError{Line: lineNum, Message: "byte count mismatch"}
		}

		address := uint32(bytes[1])<<8 | uint32(bytes[2])
		recordType := bytes[3]
		data := bytes[4 : 4+byteCount]

		switch recordType {
		case recordData:
			fullAddress := extendedAddress + address
			if current != nil && current.EndAddress()+1 == fullAddress {
				current.Data = append(current.Data, data...)
			} else {
				if current != nil {
					segments = append(segments, *current)
				}
				s := memimage.NewSegment(fullAddress, data)
				current = &s
			}
		case recordEOF:
			eofSeen = true
		case recordExtendedSegment:
			if byteCount != 2 {
				return nil, &InvalidRecordError{Line: lineNum, Message: "extended segment address must have 2 data bytes"}
			}
			if current != nil {
				segments = append(segments, *current)
				current = nil
			}
			base := uint32(data[0])<<8 | uint32(data[1])
			extendedAddress = base << 4
		case recordExtendedLinear:
			if byteCount != 2 {
				return nil, &InvalidRecordError{Line: lineNum, Message: "extended linear address must have 2 data bytes"}
			}
			if current != nil {
				segments = append(segments, *current)
				current = nil
			}
			base := uint32(data[0])<<8 | uint32(data[1])
			extendedAddress = base << 16
		case recordStartSegment, recordStartLinear:
			// ignored
		default:
			return nil, &UnsupportedRecordTypeError{Line: lineNum, RecordType: recordType}
		}
	}

	if !eofSeen {
		return nil, &UnexpectedEOFError{}
	}
	if current != nil {
		segments = append(segments, *current)
	}

	return memimage.WithSegments(segments), nil
}

// ParseIntelHex16 parses an Intel-HEX stream whose addresses are 16-bit
// word addresses, doubling each to produce byte addresses. CLI: /II2.
func ParseIntelHex16(input []byte) (*memimage.Image, error) {
	img, err := ParseIntelHex(input)
	if err != nil {
		return nil, err
	}
	var out []memimage.Segment
	for _, seg := range img.Segments() {
		start := uint64(seg.StartAddress) * 2
		if !seg.IsEmpty() {
			if start+uint64(len(seg.Data))-1 > 0xFFFFFFFF {
				return nil, &AddressOverflowError{Context: "16-bit address overflow"}
			}
		}
		if start > 0xFFFFFFFF {
			return nil, &AddressOverflowError{Context: "16-bit address overflow"}
		}
		out = append(out, memimage.NewSegment(uint32(start), seg.Data))
	}
	return memimage.WithSegments(out), nil
}

// WriteIntelHex encodes img as Intel-HEX text, CRLF-terminated to
// interoperate with reference implementations that require it.
func WriteIntelHex(img *memimage.Image, options IntelHexWriteOptions) []byte {
	Log.Logf(logger.Allow, "intelhex", "forcing CRLF line endings for interoperability")

	segments := normalizedSortedSegments(img)
	var out []byte

	bytesPerLine := int(options.BytesPerLine)
	if bytesPerLine == 0 {
		bytesPerLine = 16
	}
	autoMode := options.Mode == IntelHexAuto
	var fixedMode *IntelHexMode
	if !autoMode {
		m := options.Mode
		fixedMode = &m
	}

	var currentExtended *uint16
	currentMode := fixedMode

	for _, segment := range segments {
		addr := segment.StartAddress
		dataOffset := 0

		for dataOffset < segment.Len() {
			var lineMode IntelHexMode
			if fixedMode != nil {
				lineMode = *fixedMode
			} else if addr > 0xFFFFF {
				lineMode = IntelHexExtendedLinear
			} else {
				lineMode = IntelHexExtendedSegment
			}

			var neededExtended uint16
			switch lineMode {
			case IntelHexExtendedLinear:
				neededExtended = uint16(addr >> 16)
			case IntelHexExtendedSegment:
				neededExtended = uint16((addr >> 4) & 0xF000)
			}

			shouldEmit := currentExtended == nil || *currentExtended != neededExtended || currentMode == nil || *currentMode != lineMode
			if autoMode && lineMode == IntelHexExtendedSegment {
				if addr <= 0xFFFF {
					if currentMode == nil && currentExtended == nil {
						shouldEmit = false
					}
				} else {
					upper := uint16(addr >> 16)
					neededSegment := upper << 12
					if currentExtended == nil || *currentExtended != neededSegment {
						v := neededSegment
						currentExtended = &v
					}
				}
			}

			if shouldEmit {
				v := neededExtended
				currentExtended = &v
				m := lineMode
				currentMode = &m
				var recordType byte
				switch lineMode {
				case IntelHexExtendedLinear:
					recordType = recordExtendedLinear
				case IntelHexExtendedSegment:
					recordType = recordExtendedSegment
				}
				out = writeRecord(out, recordType, 0, []byte{byte(neededExtended >> 8), byte(neededExtended)})
			}

			offsetAddr := uint16(addr & 0xFFFF)
			remainingInBank := 0x10000 - int(offsetAddr)
			remainingData := segment.Len() - dataOffset
			chunkLen := bytesPerLine
			if remainingInBank < chunkLen {
				chunkLen = remainingInBank
			}
			if remainingData < chunkLen {
				chunkLen = remainingData
			}

			chunk := segment.Data[dataOffset : dataOffset+chunkLen]
			out = writeRecord(out, recordData, offsetAddr, chunk)

			dataOffset += chunkLen
			addr += uint32(chunkLen)
		}
	}

	out = writeRecord(out, recordEOF, 0, nil)
	return out
}

func writeRecord(out []byte, recordType byte, address uint16, data []byte) []byte {
	byteCount := byte(len(data))
	addrHi := byte(address >> 8)
	addrLo := byte(address)

	checksum := byteCount + addrHi + addrLo + recordType
	for _, b := range data {
		checksum += b
	}
	checksum = ^checksum + 1

	out = append(out, ':')
	out = pushHexByte(out, byteCount)
	out = pushHexByte(out, addrHi)
	out = pushHexByte(out, addrLo)
	out = pushHexByte(out, recordType)
	for _, b := range data {
		out = pushHexByte(out, b)
	}
	out = pushHexByte(out, checksum)
	out = pushCRLF(out)
	return out
}

func validateChecksum(bytes []byte, line int) error {
	var sum byte
	for _, b := range bytes {
		sum += b
	}
	if sum != 0 {
		actual := bytes[len(bytes)-1]
		var partial byte
		for _, b := range bytes[:len(bytes)-1] {
			partial += b
		}
		expected := ^partial + 1
		return &ChecksumMismatchError{Line: line, Expected: expected, Actual: actual}
	}
	return nil
}
