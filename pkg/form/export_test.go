package form

// InFlight returns the fields currently being revalidated by dependency
// triggers.
func InFlight[T any](f *Form[T]) []string {
	f.inflightMu.Lock()
	defer f.inflightMu.Unlock()
	out := make([]string, 0, len(f.inflight))
	for p := range f.inflight {
		out = append(out, p)
	}
	return out
}

// CachedValidators returns the number of cached per-field validators.
func CachedValidators[T any](f *Form[T]) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.validators)
}
