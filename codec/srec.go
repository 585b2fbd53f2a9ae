package codec

import (
	"bytes"

	"github.com/mkfw/hexcraft/memimage"
)

// SRecordType selects the address width of an S-Record data line.
type SRecordType int

const (
	SRecordS1 SRecordType = iota // 16-bit address
	SRecordS2                    // 24-bit address
	SRecordS3                    // 32-bit address
)

// SRecordWriteOptions configures WriteSRecord. RecordType is nil to
// auto-select by maximum address.
type SRecordWriteOptions struct {
	BytesPerLine byte
	RecordType   *SRecordType
}

// DefaultSRecordWriteOptions matches the reference writer: 16 bytes per
// line, auto type selection.
func DefaultSRecordWriteOptions() SRecordWriteOptions {
	return SRecordWriteOptions{BytesPerLine: 16}
}

// ParseSRecord decodes a Motorola S-Record byte stream.
func ParseSRecord(data []byte) (*memimage.Image, error) {
	img := memimage.New()

	lines := bytes.Split(data, []byte{'\n'})
	for idx, raw := range lines {
		lineNum := idx + 1
		line := raw
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if len(line) == 0 {
			continue
		}
		if (line[0] != 'S' && line[0] != 's') || len(line) < 2 {
			return nil, &InvalidRecordError{Line: lineNum, Message: "missing S-record prefix"}
		}

		recordType := line[1]
		recordBytes, err := parseHexBytes(line[2:], lineNum)
		if err != nil {
			return nil, err
		}
		if len(recordBytes) == 0 {
			return nil, &InvalidRecordError{Line: lineNum, Message: "missing record length"}
		}

		count := int(recordBytes[0])
		if len(recordBytes) != count+1 {
			return nil, &InvalidRecordError{Line: lineNum, Message: "byte count mismatch"}
		}

		if !srecChecksumValid(recordBytes) {
			expected := srecExpectedChecksum(recordBytes[:len(recordBytes)-1])
			actual := recordBytes[len(recordBytes)-1]
			return nil, &ChecksumMismatchError{Line: lineNum, Expected: expected, Actual: actual}
		}

		switch recordType {
		case '0', '5', '7', '8', '9':
			continue
		case '1', '2', '3':
			addrLen := map[byte]int{'1': 2, '2': 3, '3': 4}[recordType]
			dataLen := count - addrLen - 1
			if dataLen < 0 {
				return nil, &InvalidRecordError{Line: lineNum, Message: "record length too short"}
			}
			addrEnd := 1 + addrLen
			dataStart := addrEnd
			dataEnd := dataStart + dataLen
			if dataEnd > len(recordBytes)-1 {
				return nil, &InvalidRecordError{Line: lineNum, Message: "data length mismatch"}
			}

			addr := parseBigEndianAddress(recordBytes[1:addrEnd])
			if dataLen > 0 {
				rdata := recordBytes[dataStart:dataEnd]
				end := uint64(addr) + uint64(len(rdata)) - 1
				if end > 0xFFFFFFFF {
					return nil, &AddressOverflowError{Context: "s-record address overflow"}
				}
				img.AppendSegment(memimage.NewSegment(addr, rdata))
			}
		default:
			return nil, &UnsupportedRecordTypeError{Line: lineNum, RecordType: recordType}
		}
	}

	return img, nil
}

// WriteSRecord encodes img as Motorola S-Record text, CRLF-terminated.
func WriteSRecord(img *memimage.Image, options SRecordWriteOptions) ([]byte, error) {
	normalized := img.NormalizedLossy()
	maxAddr, _ := normalized.MaxAddress()

	var autoType SRecordType
	switch {
	case maxAddr <= 0xFFFF:
		autoType = SRecordS1
	case maxAddr <= 0xFFFFFF:
		autoType = SRecordS2
	default:
		autoType = SRecordS3
	}

	recordType := autoType
	if options.RecordType != nil {
		recordType = *options.RecordType
		if maxAddr > maxAddressFor(recordType) {
			return nil, &AddressOverflowError{Context: "max address exceeds S-record type limit"}
		}
	}

	bytesPerLine := int(options.BytesPerLine)
	if bytesPerLine == 0 {
		bytesPerLine = 16
	}

	segments := normalizedSortedSegments(normalized)
	var out []byte

	addrLen, recordDigit := 2, byte('1')
	switch recordType {
	case SRecordS2:
		addrLen, recordDigit = 3, '2'
	case SRecordS3:
		addrLen, recordDigit = 4, '3'
	}

	for _, segment := range segments {
		addr := segment.StartAddress
		for offset := 0; offset < segment.Len(); offset += bytesPerLine {
			end := offset + bytesPerLine
			if end > segment.Len() {
				end = segment.Len()
			}
			chunk := segment.Data[offset:end]

			addrBytes := bigEndianBytes(addr, addrLen)
			count := byte(addrLen + len(chunk) + 1)
			record := make([]byte, 0, 1+addrLen+len(chunk))
			record = append(record, count)
			record = append(record, addrBytes...)
			record = append(record, chunk...)
			checksum := srecExpectedChecksum(record)

			out = pushSRecordLine(out, recordDigit, record, checksum)
			addr += uint32(len(chunk))
		}
	}

	termDigit := byte('9')
	switch recordType {
	case SRecordS2:
		termDigit = '8'
	case SRecordS3:
		termDigit = '7'
	}
	termAddr := bigEndianBytes(0, addrLen)
	count := byte(addrLen + 1)
	term := append([]byte{count}, termAddr...)
	checksum := srecExpectedChecksum(term)
	out = pushSRecordLine(out, termDigit, term, checksum)

	return out, nil
}

func parseBigEndianAddress(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

func bigEndianBytes(v uint32, n int) []byte {
	full := []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	return full[4-n:]
}

func srecChecksumValid(b []byte) bool {
	var sum byte
	for _, c := range b {
		sum += c
	}
	return sum == 0xFF
}

func srecExpectedChecksum(b []byte) byte {
	var sum byte
	for _, c := range b {
		sum += c
	}
	return 0xFF - sum
}

func maxAddressFor(t SRecordType) uint32 {
	switch t {
	case SRecordS1:
		return 0xFFFF
	case SRecordS2:
		return 0xFFFFFF
	default:
		return 0xFFFFFFFF
	}
}

func pushSRecordLine(out []byte, recordDigit byte, data []byte, checksum byte) []byte {
	out = append(out, 'S', recordDigit)
	for _, b := range data {
		out = pushHexByte(out, b)
	}
	out = pushHexByte(out, checksum)
	out = pushCRLF(out)
	return out
}
