package intentd

// Classification is one answered message.
type Classification struct {
	Message    string  // trimmed input message
	Intent     string  // predicted tag, or "unknown" below the confidence gate
	Confidence float64 // max class probability, rounded to 4 decimals
	Response   string  // chosen canned reply or fallback text
	Outcome    string  // "matched", "low_confidence", or "catalog_mismatch"
}

// Intent is one listed catalog entry.
type Intent struct {
	Tag     string
	Example string
}

// HealthStatus represents the aggregated client health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component -> "ok"/"error"
}
