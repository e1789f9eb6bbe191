package thermo

// Bisect exposes the solver's error-mapping bisection to tests.
var Bisect = bisect
