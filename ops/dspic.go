package ops

import "github.com/mkfw/hexcraft/memimage"

// readCovered returns the r.Length() bytes starting at r.Start(), failing
// if the normalized image does not cover the whole window.
func readCovered(img *memimage.Image, r memimage.Range) ([]byte, error) {
	data, ok := img.ReadBytesContiguous(r.Start(), int(r.Length()))
	if !ok {
		return nil, &RangeNotCoveredError{Start: r.Start(), Length: r.Length()}
	}
	return data, nil
}

// DspicExpand reads r (length must be a multiple of 2) and writes a new
// high-priority segment at target (or, if target is nil, r.Start()*2, with
// an overflow check) in which every 2-byte input pair is followed by two
// 0x00 ghost bytes.
func DspicExpand(img *memimage.Image, r memimage.Range, target *uint32) error {
	if r.Length()%2 != 0 {
		return &LengthNotMultipleError{Length: int(r.Length()), Expected: 2, Operation: "dspic_expand"}
	}
	data, err := readCovered(img, r)
	if err != nil {
		return err
	}

	dest, err := dspicDefaultTarget(target, func() (uint32, error) {
		v := uint64(r.Start()) * 2
		if v > 0xFFFFFFFF {
			return 0, &AddressOverflowError{Context: "dspic_expand default target"}
		}
		return uint32(v), nil
	})
	if err != nil {
		return err
	}

	out := make([]byte, 0, len(data)*2)
	for i := 0; i < len(data); i += 2 {
		out = append(out, data[i], data[i+1], 0x00, 0x00)
	}
	img.WriteBytes(dest, out)
	return nil
}

// DspicShrink reads r (length must be a multiple of 4) and writes a new
// high-priority segment at target (or, if target is nil, r.Start()/2, which
// requires r.Start() to be even) keeping bytes 0 and 1 of every 4-byte
// group and discarding bytes 2 and 3.
func DspicShrink(img *memimage.Image, r memimage.Range, target *uint32) error {
	if r.Length()%4 != 0 {
		return &LengthNotMultipleError{Length: int(r.Length()), Expected: 4, Operation: "dspic_shrink"}
	}
	data, err := readCovered(img, r)
	if err != nil {
		return err
	}

	dest, err := dspicDefaultTarget(target, func() (uint32, error) {
		if r.Start()%2 != 0 {
			return 0, &AddressNotDivisibleError{Address: r.Start(), Divisor: 2}
		}
		return r.Start() / 2, nil
	})
	if err != nil {
		return err
	}

	out := make([]byte, 0, len(data)/2)
	for i := 0; i < len(data); i += 4 {
		out = append(out, data[i], data[i+1])
	}
	img.WriteBytes(dest, out)
	return nil
}

// DspicClearGhost reads r (length must be a multiple of 4) and rewrites the
// same range as a new high-priority segment with byte 3 of every 4-byte
// group forced to 0x00.
func DspicClearGhost(img *memimage.Image, r memimage.Range) error {
	if r.Length()%4 != 0 {
		return &LengthNotMultipleError{Length: int(r.Length()), Expected: 4, Operation: "dspic_clear_ghost"}
	}
	data, err := readCovered(img, r)
	if err != nil {
		return err
	}

	out := make([]byte, len(data))
	copy(out, data)
	for i := 3; i < len(out); i += 4 {
		out[i] = 0x00
	}
	img.WriteBytes(r.Start(), out)
	return nil
}

func dspicDefaultTarget(target *uint32, compute func() (uint32, error)) (uint32, error) {
	if target != nil {
		return *target, nil
	}
	return compute()
}
