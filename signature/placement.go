package signature

import (
	"github.com/mkfw/hexcraft/checksum"
	"github.com/mkfw/hexcraft/memimage"
)

// Place writes result into img per target, reusing checksum's placement
// vocabulary. Unlike a checksum, a signature has no fixed size known ahead
// of signing, so there is no self-exclusion precompute step: the payload is
// always collected before the key is applied. TargetFile is rejected, since
// signature output there is the caller's responsibility to write to disk.
func Place(img *memimage.Image, target checksum.Target, result []byte) error {
	if target.Kind == checksum.TargetFile {
		return &PlacementError{Reason: "file target is not valid for signature placement"}
	}

	switch target.Kind {
	case checksum.TargetAddress:
		img.WriteBytes(target.Address, result)
		return nil
	case checksum.TargetAppend:
		max, ok := img.MaxAddress()
		if !ok {
			return nil
		}
		if max == 0xFFFFFFFF {
			return &PlacementError{Reason: "append overflows the address space"}
		}
		img.WriteBytes(max+1, result)
		return nil
	case checksum.TargetBegin:
		min, ok := img.MinAddress()
		if !ok {
			return Place(img, checksum.Target{Kind: checksum.TargetAppend}, result)
		}
		img.WriteBytes(min, result)
		return nil
	case checksum.TargetPrepend:
		min, ok := img.MinAddress()
		if !ok {
			return nil
		}
		if uint64(min) < uint64(len(result)) {
			return &PlacementError{Reason: "prepend underflows the address space"}
		}
		img.WriteBytes(min-uint32(len(result)), result)
		return nil
	case checksum.TargetOverwriteEnd:
		max, ok := img.MaxAddress()
		if !ok {
			return nil
		}
		offset := uint32(len(result))
		if offset > 0 {
			offset--
		}
		if max < offset {
			return &PlacementError{Reason: "overwrite-end target underflows the address space"}
		}
		img.WriteBytes(max-offset, result)
		return nil
	default:
		return &PlacementError{Reason: "unknown placement target"}
	}
}
