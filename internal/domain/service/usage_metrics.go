package service

// UsageMetrics counts domain outcomes
type UsageMetrics interface {
	IncResolution(status string)
	IncSubmission(outcome string)
}
