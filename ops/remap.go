package ops

import "github.com/mkfw/hexcraft/memimage"

// RemapOptions configures Remap: a generic banked-window-to-linear-address
// translation. Size is the bank window's byte size; Inc is the stride
// between successive banks in source-address space.
type RemapOptions struct {
	Start  uint32
	End    uint32
	Linear uint32
	Size   uint32
	Inc    uint32
}

// Remap translates the start address of every segment fully contained in
// one bank window of [Start, End] to its linear equivalent. A segment that
// crosses a bank boundary, or lies outside [Start, End] entirely, is left
// unchanged.
func Remap(img *memimage.Image, options RemapOptions) error {
	if options.Size == 0 || options.Inc == 0 {
		return &InvalidRemapParamsError{Reason: "size and inc must be non-zero"}
	}
	if options.Start > options.End {
		return &InvalidRemapParamsError{Reason: "start must not exceed end"}
	}

	segments := img.Segments()
	out := make([]memimage.Segment, len(segments))
	for i, s := range segments {
		out[i] = remapSegment(s, options)
	}
	img.SetSegments(out)
	return nil
}

func remapSegment(s memimage.Segment, options RemapOptions) memimage.Segment {
	if s.IsEmpty() || s.StartAddress < options.Start || s.EndAddress() > options.End {
		return s
	}

	offset := s.StartAddress - options.Start
	bankBase := options.Start + (offset/options.Inc)*options.Inc
	bankEnd := bankBase + options.Size - 1
	if s.EndAddress() > bankEnd {
		return s
	}

	newStart := options.Linear + (offset/options.Inc)*options.Size + (s.StartAddress - bankBase)
	return memimage.NewSegment(newStart, s.Data)
}

// BankedMapOptions configures MapBanked: a fixed non-banked low/high window
// plus a run of 0x10000-aligned banked windows glued into one linear range.
type BankedMapOptions struct {
	BankMin         uint32
	BankMax         uint32
	LinearBase      uint32
	NonbankLowBase  uint32
	NonbankHighBase uint32
}

const (
	nonbankLowStart  = 0x4000
	nonbankLowEnd    = 0x7FFF
	nonbankHighStart = 0xC000
	nonbankHighEnd   = 0xFFFF
	bankWindowSize   = 0x4000
	bankWindowOffset = 0x8000
)

// MapBanked applies a banked-to-linear address translation matching the
// M68HC(S)12-family memory map: a non-banked low window, a non-banked high
// window, and a run of banked windows selected by the address's top 16
// bits, glued contiguously into LinearBase.
func MapBanked(img *memimage.Image, options BankedMapOptions) {
	segments := img.Segments()
	out := make([]memimage.Segment, len(segments))
	for i, s := range segments {
		out[i] = mapBankedSegment(s, options)
	}
	img.SetSegments(out)
}

func mapBankedSegment(s memimage.Segment, options BankedMapOptions) memimage.Segment {
	addr := s.StartAddress
	switch {
	case addr >= nonbankLowStart && addr <= nonbankLowEnd:
		return memimage.NewSegment(options.NonbankLowBase+(addr-nonbankLowStart), s.Data)
	case addr >= nonbankHighStart && addr <= nonbankHighEnd:
		return memimage.NewSegment(options.NonbankHighBase+(addr-nonbankHighStart), s.Data)
	}

	bank := addr >> 16
	if bank < options.BankMin || bank > options.BankMax {
		return s
	}
	windowStart := (bank << 16) + bankWindowOffset
	windowEnd := windowStart + bankWindowSize - 1
	if addr < windowStart || addr > windowEnd {
		return s
	}
	newStart := options.LinearBase + (bank-options.BankMin)*bankWindowSize + (addr - windowStart)
	return memimage.NewSegment(newStart, s.Data)
}

// MapStar12 applies the fixed banked mapping for the Freescale/NXP S12
// family: banks 0x30-0x3F.
func MapStar12(img *memimage.Image) {
	MapBanked(img, BankedMapOptions{
		BankMin:         0x30,
		BankMax:         0x3F,
		LinearBase:      0x0C0000,
		NonbankLowBase:  0x0F8000,
		NonbankHighBase: 0x0FC000,
	})
}

// MapStar12X applies the fixed banked mapping for the Freescale/NXP S12X
// family: banks 0xE0-0xFF.
func MapStar12X(img *memimage.Image) {
	MapBanked(img, BankedMapOptions{
		BankMin:         0xE0,
		BankMax:         0xFF,
		LinearBase:      0x780000,
		NonbankLowBase:  0x7F4000,
		NonbankHighBase: 0x7FC000,
	})
}

// MapStar08 applies the fixed mapping for the Freescale/NXP S08 family: a
// single non-banked low window and a full 0x00-0xFF banked range, both
// relative to the bank-window start rather than to a fixed low/high split.
func MapStar08(img *memimage.Image) {
	segments := img.Segments()
	out := make([]memimage.Segment, len(segments))
	for i, s := range segments {
		out[i] = mapStar08Segment(s)
	}
	img.SetSegments(out)
}

func mapStar08Segment(s memimage.Segment) memimage.Segment {
	addr := s.StartAddress
	if addr >= nonbankLowStart && addr <= nonbankLowEnd {
		return memimage.NewSegment(0x104000+(addr-nonbankLowStart), s.Data)
	}

	bank := addr >> 16
	if bank > 0xFF {
		return s
	}
	windowStart := (bank << 16) + bankWindowOffset
	windowEnd := windowStart + bankWindowSize - 1
	if addr < windowStart || addr > windowEnd {
		return s
	}
	return memimage.NewSegment(0x100000+bank*bankWindowSize+(addr-windowStart), s.Data)
}
