// Package pipeline executes a memory image through the fixed, ordered
// sequence of operations described by the toolkit's CLI: preset and generic
// address mapping, fill, cut, merge, filter, log script, gap fill,
// alignment, split, byte swap, checksum, and finally an optional Lua data
// processing script hook. Every stage error is annotated with the CLI
// option name that would have produced it.
package pipeline

import (
	"github.com/mkfw/hexcraft/checksum"
	"github.com/mkfw/hexcraft/internal/curated"
	"github.com/mkfw/hexcraft/internal/logger"
	"github.com/mkfw/hexcraft/logscript"
	"github.com/mkfw/hexcraft/memimage"
	"github.com/mkfw/hexcraft/ops"
)

// Log records one line per executed stage, tagged "pipeline".
var Log = logger.NewLogger(128)

// MergeEntry captures one /MT or /MO list item.
type MergeEntry struct {
	Other  *memimage.Image
	Offset int64
	Range  *memimage.Range
}

// RandomFill supplies bytes for a /FR stage when no explicit pattern (/FP)
// was given. It is typically backed by internal/random.Generator.
type RandomFill func(r memimage.Range) []byte

// Spec captures every stage's inputs, in the exact order Execute applies
// them. A zero-valued field (nil slice, nil pointer, zero bool) means that
// stage is skipped.
type Spec struct {
	MapStar12  bool
	MapStar12X bool
	MapStar08  bool
	Remap      *ops.RemapOptions

	FillRanges  []memimage.Range
	FillPattern []byte // nil selects RandomFill instead
	RandomFill  RandomFill

	CutRanges []memimage.Range

	MergeTransparent []MergeEntry // /MT, mode Preserve
	MergeOpaque      []MergeEntry // /MO, mode Overwrite

	AddressRanges []memimage.Range // /AR

	LogScript string // /L, empty means no log stage
	LogLoader logscript.Loader

	FillAll *byte // /FA

	Align *ops.AlignOptions // /AD, /AL, /AF

	Split *uint32 // /SB

	SwapWord bool
	SwapLong bool

	Checksum *checksum.Spec // /CS, /CSR

	DataProcessingScript string // optional Lua hook run after checksum
}

// Result is the pipeline's output: the transformed image and, if a
// checksum stage ran, its result bytes.
type Result struct {
	Image         *memimage.Image
	ChecksumBytes []byte
}

// Execute runs spec's stages against img in the fixed order documented on
// Spec, mutating img in place and returning it alongside any checksum
// bytes produced.
func Execute(img *memimage.Image, spec Spec) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}

	if spec.MapStar12 || spec.MapStar12X || spec.MapStar08 {
		Log.Log(logger.Allow, "pipeline", "stage: preset address mapping")
		runMapping(img, spec)
	}

	if spec.Remap != nil {
		Log.Log(logger.Allow, "pipeline", "stage: generic remap")
		if err := ops.Remap(img, *spec.Remap); err != nil {
			return Result{}, curated.Context("/REMAP", err)
		}
	}

	if len(spec.FillRanges) > 0 {
		Log.Log(logger.Allow, "pipeline", "stage: fill ranges")
		if err := runFill(img, spec); err != nil {
			return Result{}, err
		}
	}

	if len(spec.CutRanges) > 0 {
		Log.Log(logger.Allow, "pipeline", "stage: cut ranges")
		ops.CutRanges(img, spec.CutRanges)
	}

	if len(spec.MergeTransparent) > 0 {
		Log.Log(logger.Allow, "pipeline", "stage: transparent merges")
		runMerges(img, spec.MergeTransparent, ops.MergePreserve)
	}
	if len(spec.MergeOpaque) > 0 {
		Log.Log(logger.Allow, "pipeline", "stage: opaque merges")
		runMerges(img, spec.MergeOpaque, ops.MergeOverwrite)
	}

	if spec.AddressRanges != nil {
		Log.Log(logger.Allow, "pipeline", "stage: address-range filter")
		ops.FilterRanges(img, spec.AddressRanges)
	}

	if spec.LogScript != "" {
		Log.Log(logger.Allow, "pipeline", "stage: log script")
		if err := logscript.ExecuteScript(img, spec.LogScript, spec.LogLoader); err != nil {
			return Result{}, curated.Context("/L", err)
		}
	}

	if spec.FillAll != nil {
		Log.Log(logger.Allow, "pipeline", "stage: fill all gaps")
		img.FillGaps(*spec.FillAll)
	}

	if spec.Align != nil {
		Log.Log(logger.Allow, "pipeline", "stage: alignment")
		if err := ops.Align(img, *spec.Align); err != nil {
			return Result{}, curated.Context("/AD/AL", err)
		}
	}

	if spec.Split != nil {
		Log.Log(logger.Allow, "pipeline", "stage: split")
		ops.Split(img, *spec.Split)
	}

	if spec.SwapWord {
		Log.Log(logger.Allow, "pipeline", "stage: swap word")
		ops.SwapWord(img)
	}
	if spec.SwapLong {
		Log.Log(logger.Allow, "pipeline", "stage: swap long")
		ops.SwapDWord(img)
	}

	var checksumBytes []byte
	if spec.Checksum != nil {
		Log.Log(logger.Allow, "pipeline", "stage: checksum")
		result, err := checksum.Run(img, *spec.Checksum)
		if err != nil {
			return Result{}, curated.Context("/CS", err)
		}
		checksumBytes = result
	}

	if spec.DataProcessingScript != "" {
		Log.Log(logger.Allow, "pipeline", "stage: data processing script")
		if err := ops.RunDataProcessingScript(img, spec.DataProcessingScript); err != nil {
			return Result{}, curated.Context("/DP", err)
		}
	}

	return Result{Image: img, ChecksumBytes: checksumBytes}, nil
}

func runMapping(img *memimage.Image, spec Spec) {
	if spec.MapStar12 {
		ops.MapStar12(img)
	}
	if spec.MapStar12X {
		ops.MapStar12X(img)
	}
	if spec.MapStar08 {
		ops.MapStar08(img)
	}
}

func runFill(img *memimage.Image, spec Spec) error {
	if spec.FillPattern != nil {
		options := ops.FillOptions{Pattern: spec.FillPattern}
		ops.FillRanges(img, spec.FillRanges, options)
		return nil
	}
	if spec.RandomFill == nil {
		return nil
	}
	for _, r := range spec.FillRanges {
		ops.Fill(img, r, ops.FillOptions{Pattern: spec.RandomFill(r)})
	}
	return nil
}

func runMerges(img *memimage.Image, entries []MergeEntry, mode ops.MergeMode) {
	for _, entry := range entries {
		options := ops.MergeOptions{Mode: mode, Offset: entry.Offset, Range: entry.Range}
		ops.Merge(img, entry.Other, options)
	}
}
