package export

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Document is a titled dataset with heading lines above the table and
// footer lines below it.
type Document struct {
	Title   string
	Heading []string
	Data    Dataset
	Footer  []string
	// Widths overrides the column width (mm) per header; missing headers
	// share the remaining page width.
	Widths map[string]float64
}
