package domain

// RecognitionCriteria are the minimum-substance thresholds a post must meet.
type RecognitionCriteria struct {
	MinCharCountNoSpaces int
	MinImageCount        int
}

// ContentMetrics are the extracted counts the recognition policy evaluates.
type ContentMetrics struct {
	CharCountNoSpaces int
	ImageCount        int
}

// Recognize reports whether the metrics meet both thresholds. Both clauses are
// required; an image surplus never compensates for missing text.
func Recognize(m ContentMetrics, c RecognitionCriteria) bool {
	return m.CharCountNoSpaces >= c.MinCharCountNoSpaces && m.ImageCount >= c.MinImageCount
}
