package legend

// Default geometry of the legend canvas.
const (
	DefaultPadding = 16
	DefaultSpacing = 16
	DefaultWidth   = 300
	SwatchSize     = 7
	labelOffsetX   = 12
	labelOffsetY   = 9
)

// Entry pairs a category with its swatch color.
type Entry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

// Entries zips domain and rng. When the lengths differ the extra items of
// the longer slice are dropped without error.
func Entries(domain, rng []string) []Entry {
	n := min(len(domain), len(rng))
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Entry{Category: domain[i], Color: rng[i]})
	}
	return out
}

// Options controls legend geometry. Zero fields take the defaults.
type Options struct {
	Width   float64 `json:"width" koanf:"width" yaml:"width"`
	Padding float64 `json:"padding" koanf:"padding" yaml:"padding"`
	Spacing float64 `json:"spacing" koanf:"spacing" yaml:"spacing"`
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.Spacing <= 0 {
		o.Spacing = DefaultSpacing
	}
	return o
}

// Item is one positioned swatch and label.
type Item struct {
	Entry
	SwatchX, SwatchY float64
	SwatchSize       float64
	LabelX, LabelY   float64
}

// Legend is the positioned legend canvas.
type Legend struct {
	Width, Height float64
	Items         []Item
}

// Build stacks entries vertically. The canvas height is
// 2*padding + len(entries)*spacing.
func Build(entries []Entry, opts Options) Legend {
	opts = opts.withDefaults()
	l := Legend{
		Width:  opts.Width,
		Height: 2*opts.Padding + float64(len(entries))*opts.Spacing,
		Items:  make([]Item, len(entries)),
	}
	for i, e := range entries {
		y := opts.Padding + float64(i)*opts.Spacing
		l.Items[i] = Item{
			Entry:      e,
			SwatchX:    opts.Padding,
			SwatchY:    y,
			SwatchSize: SwatchSize,
			LabelX:     opts.Padding + labelOffsetX,
			LabelY:     y + labelOffsetY,
		}
	}
	return l
}
