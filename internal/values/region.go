package values

// Region is a named rectangle of a texture atlas in normalized UV space.
type Region struct {
	Name   string  `yaml:"name"`
	U      float32 `yaml:"u"`
	V      float32 `yaml:"v"`
	U2     float32 `yaml:"u2"`
	V2     float32 `yaml:"v2"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// FullRegion covers the whole texture with a square aspect.
func FullRegion(name string) Region {
	return Region{Name: name, U2: 1, V2: 1, Width: 1, Height: 1}
}

// HalfInvAspect is half of height/width, the half-height of a unit-wide quad.
func (r Region) HalfInvAspect() float32 {
	if r.Width == 0 {
		return 0.5
	}
	return 0.5 * float32(r.Height) / float32(r.Width)
}
