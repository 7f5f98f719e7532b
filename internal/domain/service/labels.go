package service

// Labels looks up display strings for one locale. Core logic never depends on
// it; it is handed explicitly to whatever renders labels.
type Labels interface {
	// T returns the message for key, or key itself when none is defined.
	T(key string) string

	// Locale returns the BCP 47 tag the labels are resolved in.
	Locale() string
}
