package confidence

// Label maps an overall score to a qualitative band. Band lower bounds
// are inclusive.
func Label(overall float64) string {
	switch {
	case overall >= 0.9:
		return "very high"
	case overall >= 0.75:
		return "high"
	case overall >= 0.5:
		return "moderate"
	case overall >= 0.25:
		return "low"
	default:
		return "very low"
	}
}

// Label returns the qualitative band for this value's overall score.
func (c *DimensionalConfidence) Label() string {
	return Label(c.overall)
}
