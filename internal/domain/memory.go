package domain

// Memory is the partially-structured mapping the assistant accumulates across
// turns (sub-objects like "pet", "travel", "vehicle", "health",
// "lastViewedCategory", "lastUploadedDocument", "recentDocument"). It is
// owned by the session, sent to the reply generator each turn, and replaced
// wholesale by whatever updated memory the generator returns.
type Memory map[string]any

// Clone returns a deep-enough copy: top-level keys and nested maps are
// copied so callers cannot alias the session's state.
func (m Memory) Clone() Memory {
	if m == nil {
		return Memory{}
	}
	out := make(Memory, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			nc := make(map[string]any, len(nested))
			for nk, nv := range nested {
				nc[nk] = nv
			}
			out[k] = nc
			continue
		}
		out[k] = v
	}
	return out
}

// Merge folds other into m: new keys are added, existing nested maps are
// extended key-by-key, scalar values are overwritten. Nothing is dropped.
func (m Memory) Merge(other Memory) Memory {
	if m == nil {
		m = Memory{}
	}
	for k, v := range other {
		incoming, inOK := v.(map[string]any)
		existing, exOK := m[k].(map[string]any)
		if inOK && exOK {
			for nk, nv := range incoming {
				existing[nk] = nv
			}
			continue
		}
		m[k] = v
	}
	return m
}
