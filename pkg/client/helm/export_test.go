package helm

// MergeValues exposes mergeValues for tests.
func MergeValues(spec *ChartSpec) (map[string]any, error) {
	return mergeValues(spec)
}

// ParseChartRef exposes parseChartRef for tests.
func ParseChartRef(chartRef string) (string, string) {
	return parseChartRef(chartRef)
}
