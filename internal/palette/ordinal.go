package palette

// Ordinal maps category names onto a fixed color range by position.
// Names not in the initial domain are appended on first lookup, and
// positions past the end of the range wrap around.
type Ordinal struct {
	index  map[string]int
	domain []string
	rng    []string
}

// NewOrdinal builds a scale over domain and rng. Duplicate domain names keep
// their first position.
func NewOrdinal(domain, rng []string) *Ordinal {
	o := &Ordinal{
		index: make(map[string]int, len(domain)),
		rng:   append([]string(nil), rng...),
	}
	for _, name := range domain {
		o.add(name)
	}
	return o
}

func (o *Ordinal) add(name string) int {
	if i, ok := o.index[name]; ok {
		return i
	}
	i := len(o.domain)
	o.index[name] = i
	o.domain = append(o.domain, name)
	return i
}

// Color returns the color for name. An empty range yields "".
func (o *Ordinal) Color(name string) string {
	if len(o.rng) == 0 {
		return ""
	}
	i := o.add(name)
	return o.rng[i%len(o.rng)]
}

// Domain returns the names known to the scale, in insertion order.
func (o *Ordinal) Domain() []string {
	return append([]string(nil), o.domain...)
}

// Range returns the colors of the scale.
func (o *Ordinal) Range() []string {
	return append([]string(nil), o.rng...)
}
