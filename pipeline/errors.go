package pipeline

// ValidationError reports a combination of stage inputs that the pipeline
// refuses to run, because the original CLI grammar treats the combination
// as ambiguous rather than silently picking one interpretation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "pipeline: " + e.Reason
}

// Validate rejects combinations of stage inputs that are individually
// well-formed but ambiguous together: /MT and /MO in the same run, more
// than one preset mapping flag, or a preset mapping combined with /REMAP.
func (s Spec) Validate() error {
	if len(s.MergeTransparent) > 0 && len(s.MergeOpaque) > 0 {
		return &ValidationError{Reason: "cannot combine /MT and /MO in one run"}
	}

	mappings := 0
	if s.MapStar12 {
		mappings++
	}
	if s.MapStar12X {
		mappings++
	}
	if s.MapStar08 {
		mappings++
	}
	if mappings > 1 {
		return &ValidationError{Reason: "cannot combine more than one preset address mapping"}
	}
	if s.Remap != nil && mappings > 0 {
		return &ValidationError{Reason: "cannot combine /REMAP with a preset address mapping"}
	}

	return nil
}
