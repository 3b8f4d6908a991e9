// Package ndgrid fits cubic smoothing splines to data sampled on an
// N-dimensional rectangular grid.
//
// The fit is a tensor product of univariate smoothing splines: the
// single-axis pipeline runs once per axis in a fixed order (last axis
// first), each pass treating every other axis as trailing slices and
// folding its segment coefficients into the value tensor. The result is
// one fused coefficient tensor with 4*(m_k-1) entries along axis k.
//
// Evaluation takes one query vector per axis and contracts the tensor
// axis by axis, returning fitted values in row-major order with shape
// (len(queries[0]), ..., len(queries[N-1])).
//
// Each fit is a pure function of its inputs; the returned Spline is
// immutable and safe for concurrent evaluation.
package ndgrid
