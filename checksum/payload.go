package checksum

import "github.com/mkfw/hexcraft/memimage"

// ForcedRange synthesizes a low-priority fill across Range before the
// payload's effective range and data are determined, so that otherwise
// uncovered addresses still contribute deterministic bytes to the sum. An
// empty Pattern defaults to a single 0xFF byte, matching Fill's default.
type ForcedRange struct {
	Range   memimage.Range
	Pattern []byte
}

func (f ForcedRange) pattern() []byte {
	if len(f.Pattern) == 0 {
		return []byte{0xFF}
	}
	return f.Pattern
}

// Options configures payload collection for one checksum run. Range, when
// set, fixes the effective range explicitly; otherwise ForcedRange's range
// is used, falling back to the working image's [min, max] span.
type Options struct {
	Range         *memimage.Range
	ForcedRange   *ForcedRange
	ExcludeRanges []memimage.Range
}

// collectData builds the checksum payload per the six-step contract: start
// from the normalized-lossy image, optionally synthesize a forced fill,
// resolve the effective range, subtract exclusions (including the caller's
// placement target_exclude, if any), and emit the included bytes, filling
// true gaps with 0xFF when a forced range is active, skipping them
// otherwise instead. Word-sum algorithms additionally require every maximal
// contiguous emitted run to start on an even address and have even length.
func collectData(img *memimage.Image, options Options, algo Algorithm, targetExclude *memimage.Range) ([]byte, error) {
	working := img.NormalizedLossy()

	forcedActive := options.ForcedRange != nil
	if forcedActive {
		data := tile(options.ForcedRange.pattern(), options.ForcedRange.Range.Length())
		padded := memimage.New()
		padded.SetSegments(working.Segments())
		padded.PrependSegment(memimage.NewSegment(options.ForcedRange.Range.Start(), data))
		working = padded.NormalizedLossy()
	}

	effectiveRange, ok := effectiveRange(options, working)
	if !ok {
		return nil, &NoEffectiveRangeError{}
	}

	excludes := append([]memimage.Range{}, options.ExcludeRanges...)
	if targetExclude != nil {
		excludes = append(excludes, *targetExclude)
	}
	included := memimage.SubtractRanges(effectiveRange, excludes)

	var out []byte
	for _, sub := range included {
		chunk, err := emitRange(working, sub, forcedActive, algo)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func effectiveRange(options Options, working *memimage.Image) (memimage.Range, bool) {
	if options.Range != nil {
		return *options.Range, true
	}
	if options.ForcedRange != nil {
		return options.ForcedRange.Range, true
	}
	min, ok := working.MinAddress()
	if !ok {
		return memimage.Range{}, false
	}
	max, _ := working.MaxAddress()
	r, err := memimage.RangeFromStartEnd(min, max)
	if err != nil {
		return memimage.Range{}, false
	}
	return r, true
}

// emitRange walks sub one address at a time, grouping present bytes (or, in
// forced mode, synthesized 0xFF bytes for true gaps) into maximal runs and
// validating each run's alignment before appending it to the payload.
func emitRange(working *memimage.Image, sub memimage.Range, forcedActive bool, algo Algorithm) ([]byte, error) {
	var out []byte
	var run []byte
	var runStart uint32

	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		if algo.IsWordSum() && (runStart%2 != 0 || len(run)%2 != 0) {
			return &UnalignedRunError{Start: runStart, Length: len(run)}
		}
		out = append(out, run...)
		run = nil
		return nil
	}

	addr := sub.Start()
	for {
		if v, ok := working.ReadByte(addr); ok {
			if len(run) == 0 {
				runStart = addr
			}
			run = append(run, v)
		} else if forcedActive {
			if len(run) == 0 {
				runStart = addr
			}
			run = append(run, 0xFF)
		} else if err := flush(); err != nil {
			return nil, err
		}
		if addr == sub.End() {
			break
		}
		addr++
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func tile(pattern []byte, length uint32) []byte {
	out := make([]byte, length)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out
}
