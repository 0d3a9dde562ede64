package config

// File represents the structure of the .htmlmend configuration file.
// Every field is optional; zero values leave the built-in defaults alone.
type File struct {
	// Document is the HTML file to operate on.
	Document string `yaml:"document,omitempty"`

	// Lenient drops malformed UTF-8 instead of failing.
	Lenient bool `yaml:"lenient,omitempty"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"logFormat,omitempty"`

	// Strip configures the marker-bounded deletion.
	Strip StripSection `yaml:"strip,omitempty"`

	// Pairs configures the non-ASCII pair report.
	Pairs PairsSection `yaml:"pairs,omitempty"`

	// Seq configures the contextual sequence search.
	Seq SeqSection `yaml:"seq,omitempty"`
}

// StripSection holds the strip markers.
type StripSection struct {
	// Start is the literal start marker.
	Start string `yaml:"start,omitempty"`

	// End is the literal end marker.
	End string `yaml:"end,omitempty"`

	// KeepStart keeps the start marker in the output.
	KeepStart *bool `yaml:"keepStart,omitempty"`
}

// PairsSection holds pair report settings.
type PairsSection struct {
	// Top is the number of pairs to list.
	Top *int `yaml:"top,omitempty"`
}

// SeqSection holds sequence search settings.
type SeqSection struct {
	// Width is the number of characters shown on each side of a probe.
	Width int `yaml:"width,omitempty"`

	// Probes are sequences in unicode-escape notation (e.g. `\xd4\xf6`).
	Probes []string `yaml:"probes,omitempty"`
}

// Apply copies the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.Document != "" {
		cfg.File = f.Document
	}
	if f.Lenient {
		cfg.Lenient = true
	}
	if f.LogFormat != "" {
		cfg.LogFormat = f.LogFormat
	}
	if f.Strip.Start != "" {
		cfg.StartMarker = f.Strip.Start
	}
	if f.Strip.End != "" {
		cfg.EndMarker = f.Strip.End
	}
	if f.Strip.KeepStart != nil {
		cfg.KeepStart = *f.Strip.KeepStart
	}
	if f.Pairs.Top != nil {
		cfg.Top = *f.Pairs.Top
	}
	if f.Seq.Width != 0 {
		cfg.Width = f.Seq.Width
	}
	if len(f.Seq.Probes) > 0 {
		cfg.Probes = append([]string(nil), f.Seq.Probes...)
	}
}
