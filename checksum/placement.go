package checksum

import "github.com/mkfw/hexcraft/memimage"

// TargetKind selects where a checksum's result bytes are written.
type TargetKind int

const (
	TargetAddress TargetKind = iota
	TargetAppend
	TargetPrepend
	TargetBegin
	TargetOverwriteEnd
	TargetFile
)

// Target describes a placement. Address is used only by TargetAddress; Path
// only by TargetFile.
type Target struct {
	Kind    TargetKind
	Address uint32
	Path    string
}

// excludeFor computes, before the payload is collected, the self-reference
// exclusion window a target will occupy once written. Its length is fixed
// (the algorithm's result size), so it can be computed ahead of the write.
func excludeFor(img *memimage.Image, target Target, size int) (*memimage.Range, error) {
	switch target.Kind {
	case TargetAddress:
		r, err := memimage.RangeFromStartLength(target.Address, uint32(size))
		if err != nil {
			return nil, err
		}
		return &r, nil
	case TargetBegin:
		min, ok := img.MinAddress()
		if !ok {
			return nil, nil
		}
		r, err := memimage.RangeFromStartLength(min, uint32(size))
		if err != nil {
			return nil, err
		}
		return &r, nil
	case TargetOverwriteEnd:
		max, ok := img.MaxAddress()
		if !ok {
			return nil, &PlacementError{Reason: "overwrite-end target on an empty image"}
		}
		if uint64(max) < uint64(size-1) {
			return nil, &PlacementError{Reason: "overwrite-end target underflows the address space"}
		}
		addr := max - uint32(size-1)
		r, err := memimage.RangeFromStartLength(addr, uint32(size))
		if err != nil {
			return nil, err
		}
		return &r, nil
	default:
		return nil, nil
	}
}

// place writes result into img per target. TargetFile leaves img untouched;
// the caller is responsible for writing result to target.Path.
func place(img *memimage.Image, target Target, result []byte) error {
	switch target.Kind {
	case TargetAddress:
		img.WriteBytes(target.Address, result)
		return nil
	case TargetAppend:
		max, ok := img.MaxAddress()
		if !ok {
			return nil
		}
		if max == 0xFFFFFFFF {
			return &PlacementError{Reason: "append overflows the address space"}
		}
		img.WriteBytes(max+1, result)
		return nil
	case TargetPrepend:
		min, ok := img.MinAddress()
		if !ok {
			return nil
		}
		if uint64(min) < uint64(len(result)) {
			return &PlacementError{Reason: "prepend underflows the address space"}
		}
		img.WriteBytes(min-uint32(len(result)), result)
		return nil
	case TargetBegin:
		min, ok := img.MinAddress()
		if !ok {
			return place(img, Target{Kind: TargetAppend}, result)
		}
		img.WriteBytes(min, result)
		return nil
	case TargetOverwriteEnd:
		max, ok := img.MaxAddress()
		if !ok {
			return &PlacementError{Reason: "overwrite-end target on an empty image"}
		}
		if uint64(max) < uint64(len(result)-1) {
			return &PlacementError{Reason: "overwrite-end target underflows the address space"}
		}
		img.WriteBytes(max-uint32(len(result)-1), result)
		return nil
	case TargetFile:
		return nil
	default:
		return &PlacementError{Reason: "unknown placement target"}
	}
}
