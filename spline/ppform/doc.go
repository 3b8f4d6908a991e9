// Package ppform represents piecewise cubic polynomials in local
// power form and evaluates them at arbitrary query points.
//
// A [Spline] holds strictly increasing breakpoints and, per segment and
// per data slice, four coefficients c0..c3 of the cubic
//
//	c3*t^3 + c2*t^2 + c1*t + c0,  t = x - breaks[i]
//
// Segments are half-open [breaks[i], breaks[i+1]); the last segment is
// closed on the right. Out-of-span queries evaluate the nearest boundary
// segment's cubic unchanged unless extrapolation is disabled.
//
// A Spline is immutable after construction and safe for concurrent use.
package ppform
