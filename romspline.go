/*
Package romspline builds reduced-order splines: from a dense sample of a one dimensional function,
it greedily selects the smallest set of knots such that an interpolating polynomial spline through
those knots reproduces every sample within a maximum pointwise error.

The reduction lives in package greedy, the interpolating B-splines in package spline, and the
persistence of reduced models in packages storage and container.
*/
package romspline
