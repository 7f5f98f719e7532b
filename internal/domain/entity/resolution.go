package entity

// PayloadStatus classifies a stored record for the QR screen.
type PayloadStatus string

const (
	PayloadAbsent    PayloadStatus = "absent"
	PayloadMalformed PayloadStatus = "malformed"
	PayloadOutdated  PayloadStatus = "outdated"
	PayloadCurrent   PayloadStatus = "current"
)

// Resolution is the outcome of classifying the stored record.
type Resolution struct {
	Status PayloadStatus
	// Payload holds the stored bytes verbatim, set only when Status is PayloadCurrent.
	Payload []byte
	// StoredVersion is the version found in the record, if it had one.
	StoredVersion SchemaVersion
	HasVersion    bool
	// Err carries the decode failure for PayloadMalformed.
	Err error
}

// Renderable reports whether the payload may be handed to the QR renderer.
func (r Resolution) Renderable() bool {
	return r.Status == PayloadCurrent
}

// Classify decides what the QR screen may do with a stored value. An empty
// value counts as no value.
func Classify(raw []byte, found bool, current SchemaVersion) Resolution {
	if !found || len(raw) == 0 {
		return Resolution{Status: PayloadAbsent}
	}

	record, err := Deserialize(raw)
	if err != nil {
		return Resolution{Status: PayloadMalformed, Err: err}
	}

	if !record.HasVersion {
		return Resolution{Status: PayloadOutdated}
	}

	if IsStale(record.Version, current) {
		return Resolution{
			Status:        PayloadOutdated,
			StoredVersion: record.Version,
			HasVersion:    true,
		}
	}

	payload := make([]byte, len(raw))
	copy(payload, raw)

	return Resolution{
		Status:        PayloadCurrent,
		Payload:       payload,
		StoredVersion: record.Version,
		HasVersion:    true,
	}
}
