package report

// Format selects the report encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Option applies a configuration option to a report.
type Option func(*config)

type config struct {
	format  Format
	top     int
	kFactor float64
	matches int
}

// WithFormat selects text or json output. Unknown formats are ignored.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatText, FormatJSON:
			c.format = f
		}
	}
}

// WithTop limits the report to the first n standings. Zero means all.
func WithTop(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.top = n
		}
	}
}

// WithKFactor sets the K-factor named in the report header.
func WithKFactor(k float64) Option {
	return func(c *config) {
		c.kFactor = k
	}
}

// WithMatches records how many matches produced the table (json only).
func WithMatches(n int) Option {
	return func(c *config) {
		c.matches = n
	}
}
