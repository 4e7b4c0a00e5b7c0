package packager

// Option tunes Copy and Pack.
type Option func(*options)

type options struct {
	// hostProcesses are checked before Copy overwrites assemblies.
	hostProcesses []string
	// dryRun logs the planned work and touches nothing.
	dryRun bool
}

// WithHostProcesses sets the executables whose presence Copy warns about.
func WithHostProcesses(names ...string) Option {
	return func(o *options) {
		o.hostProcesses = append([]string(nil), names...)
	}
}

// WithDryRun makes Copy and Pack only log what they would do.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

func newOptions(opts []Option) *options {
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}

	return o
}
