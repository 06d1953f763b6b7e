package resumepdf

import "time"

// generatorConfig holds internal configuration for a Generator.
type generatorConfig struct {
	page         *PageConfig
	backend      Backend
	clock        func() time.Time
	sections     []Section
	projectLimit int
	typography   Typography
	palette      Palette
}

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		clock:        time.Now,
		sections:     DefaultSections,
		projectLimit: 2,
		typography:   DefaultTypography(),
		palette:      DefaultPalette(),
	}
}

// Option configures a [Generator].
type Option func(*generatorConfig)

// WithPageConfig sets the paper size, orientation and margins.
// A nil config restores the defaults.
func WithPageConfig(pc *PageConfig) Option {
	return func(c *generatorConfig) {
		c.page = pc
	}
}

// WithBackend sets the backend that serializes the layout. Defaults to
// the built-in fpdf backend.
func WithBackend(b Backend) Option {
	return func(c *generatorConfig) {
		c.backend = b
	}
}

// WithClock sets the source of the document creation time. It is the only
// time-dependent input of a generation, so a fixed clock makes the output
// reproducible.
func WithClock(now func() time.Time) Option {
	return func(c *generatorConfig) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithSections sets which sections are drawn and in which order.
func WithSections(sections ...Section) Option {
	return func(c *generatorConfig) {
		c.sections = append([]Section(nil), sections...)
	}
}

// WithProjectLimit sets how many projects are drawn. Defaults to 2.
// A negative value draws every project.
func WithProjectLimit(n int) Option {
	return func(c *generatorConfig) {
		c.projectLimit = n
	}
}

// WithTypography overrides font family, sizes and line spacing. Zero
// fields keep their defaults.
func WithTypography(t Typography) Option {
	return func(c *generatorConfig) {
		c.typography = t
	}
}

// WithPalette overrides the colors.
func WithPalette(p Palette) Option {
	return func(c *generatorConfig) {
		c.palette = p
	}
}

// converterConfig holds internal configuration for a Converter.
type converterConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	autoDownload bool
	headless     string
}

func defaultConverterConfig() converterConfig {
	return converterConfig{
		timeout:  30 * time.Second,
		headless: "new",
	}
}

// ConverterOption configures a [Converter].
type ConverterOption func(*converterConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) ConverterOption {
	return func(c *converterConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single render.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) ConverterOption {
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() ConverterOption {
	return func(c *converterConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload makes a Converter without an executable path use an
// installed Chrome if one is found, and download a compatible Chromium
// otherwise. The download is cached between runs.
func WithAutoDownload() ConverterOption {
	return func(c *converterConfig) {
		c.autoDownload = true
	}
}
