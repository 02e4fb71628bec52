package excel

// FileData is the raw tabular content of a CSV/XLSX file: a header row plus
// string data rows, before any normalization.
type FileData struct {
	Headers []string
	Rows    [][]string
}
