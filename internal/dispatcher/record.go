package dispatcher

// Record is one log event: an open mapping of field names to values.
// At minimum it carries a severity field and a message field, but the
// dispatcher treats it as opaque data to be serialized as the request body.
type Record map[string]any

// MergeRightWins returns a new mapping holding a shallow merge of base and
// overrides, with override keys winning on collision. Neither input is mutated.
func MergeRightWins(base Record, overrides map[string]any) Record {
	merged := make(Record, len(base)+len(overrides))

	for key, value := range base {
		merged[key] = value
	}

	for key, value := range overrides {
		merged[key] = value
	}

	return merged
}
