package checksum

import "github.com/mkfw/hexcraft/memimage"

// Spec describes one checksum to run: the algorithm, its payload options,
// the output byte order, and where the result is written.
type Spec struct {
	Algorithm     Algorithm
	Options       Options
	ReverseEndian bool
	Target        Target
}

// Run collects the payload described by spec.Options, computes
// spec.Algorithm over it, writes the result to spec.Target (unless it is
// TargetFile, which the caller must handle), and returns the result bytes.
func Run(img *memimage.Image, spec Spec) ([]byte, error) {
	exclude, err := excludeFor(img, spec.Target, spec.Algorithm.ResultSize())
	if err != nil {
		return nil, err
	}

	data, err := collectData(img, spec.Options, spec.Algorithm, exclude)
	if err != nil {
		return nil, err
	}

	result, err := Compute(spec.Algorithm, data, spec.ReverseEndian)
	if err != nil {
		return nil, err
	}

	if err := place(img, spec.Target, result); err != nil {
		return nil, err
	}
	return result, nil
}

// RunMany runs each spec in turn against the same mutable image, each entry
// seeing the side effects of the ones before it. It implements the /CSM and
// /CSMR multi-checksum composition.
func RunMany(img *memimage.Image, specs []Spec) ([][]byte, error) {
	results := make([][]byte, 0, len(specs))
	for _, spec := range specs {
		result, err := Run(img, spec)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
