package http

// ErrCalculation exposes the error mapping to the external test package.
var ErrCalculation = errCalculation
