package telemetry

// Span attribute keys for calculation spans.
const (
	AttrTemperature = "vle.temperature_c"
	AttrX1          = "vle.x1"
	AttrComponent1  = "vle.component1"
	AttrComponent2  = "vle.component2"
	AttrPVap        = "vle.p_vap_bar"
	AttrIterations  = "vle.iterations"
	AttrCacheHit    = "vle.cache_hit"
)
