// Package smooth fits cubic smoothing splines to scattered, possibly
// noisy data using the penalized least-squares (Reinsch) formulation.
//
// The fit balances fidelity to the samples against integrated curvature
// through a smoothing parameter p in [0, 1]:
//
//   - p = 0 collapses to the weighted least-squares straight line,
//   - p = 1 interpolates the data exactly with a natural cubic spline.
//
// When p is not given it is chosen deterministically by balancing the
// traces of the curvature and residual operators, the same default as
// de Boor's smoothing routine. The solver assembles a symmetric banded
// system for the second derivatives at the interior knots (natural
// boundary condition at both ends) and solves it in O(m) time with a
// banded LDL^T factorization.
//
// Vector-valued samples share the grid: each trailing slice is fitted
// against the same breakpoints with its own right-hand side, and all
// slices reuse one factorization.
//
// The result is an immutable [ppform.Spline] holding per-segment cubic
// coefficients in local coordinates, ready for repeated evaluation.
package smooth
