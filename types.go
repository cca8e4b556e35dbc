package jsoner

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore keeps the last value.
}

// ParseOpt bundles parsing options for the JSON boundary. The zero value
// ignores duplicate keys and sets no limits.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // maximum container nesting; 0 means unlimited
	MaxBytes   int64 // maximum input size; 0 means unlimited
	// OnWarning receives non-fatal issues, such as duplicate keys under Warn.
	OnWarning func(*ConversionError)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
