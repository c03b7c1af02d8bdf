package model

// Verdict is the outcome of comparing a stored value against its source.
type Verdict string

const (
	VerdictMatch    Verdict = "MATCH"
	VerdictMismatch Verdict = "MISMATCH"
	VerdictError    Verdict = "ERROR"
)

// ReconciliationResult holds one field/symbol/table comparison between the
// backing store and the authoritative market-data source. Values are kept
// as strings: the comparison contract is raw string equality, with no
// numeric normalization.
type ReconciliationResult struct {
	Field       string  `json:"field"`
	Symbol      string  `json:"symbol"`
	Table       string  `json:"table"`
	StoredValue string  `json:"stored_value"`
	SourceValue string  `json:"source_value"`
	Verdict     Verdict `json:"verdict"`
}
