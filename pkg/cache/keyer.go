package cache

// Keyer builds cache keys. Keys for the same inputs are stable across
// processes.
type Keyer interface {
	// LayoutKey identifies a computed layout of a chart.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a chart.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout settings that change the geometry.
type LayoutKeyOpts struct {
	SumTolerance  float64 `json:"sum_tol"`
	AreaTolerance float64 `json:"area_tol"`
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Labels bool    `json:"labels"`
	Legend *bool   `json:"legend,omitempty"`
	Axes   *bool   `json:"axes,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	LayoutKeyOpts
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, chartHash, opts)
}
