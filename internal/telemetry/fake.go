package telemetry

// FakeSink records published items for test assertions.
type FakeSink struct {
	// Records contains all records that were published.
	Records []Record

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

func (f *FakeSink) Publish(record Record) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Records = append(f.Records, record)
	return nil
}

func (f *FakeSink) Close() error {
	f.Closed = true
	return nil
}
