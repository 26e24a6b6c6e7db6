package indicator

// NoopIndicator only remembers the last state
type NoopIndicator struct {
	Active bool
}

func (i *NoopIndicator) Set(active bool) error {
	i.Active = active
	return nil
}

func (i *NoopIndicator) Close() error {
	return nil
}
