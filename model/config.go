package model

// Config represents the tunables of the intelligence pipeline.
type Config struct {
	// ContextWindow is the maximum number of prior conversations considered
	// relevant for a new message.
	ContextWindow int `json:"context_window"`
	// EntityScanLimit is how many recent conversations are scanned for
	// entity-name matches.
	EntityScanLimit int `json:"entity_scan_limit"`
	// KeywordScanLimit is how many recent conversations the keyword
	// fallback scans.
	KeywordScanLimit int `json:"keyword_scan_limit"`
	// DedupContext removes duplicate conversations from retrieved context.
	// Off by default: a conversation matching several query entities is
	// returned once per match, which the coach reads as reinforcement.
	DedupContext bool `json:"dedup_context"`
	// DataDir is the root directory of the local file library.
	DataDir string `json:"data_dir"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		ContextWindow:    10,
		EntityScanLimit:  50,
		KeywordScanLimit: 20,
		DedupContext:     false,
		DataDir:          "./adam_data/library",
	}
}
