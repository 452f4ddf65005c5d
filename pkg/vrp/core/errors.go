package core

import "github.com/pkg/errors"

// errMatrixShape is returned when a Matrix's flat grids don't match its
// declared Size. Wrapped with errors.Wrap at call sites that have more
// context (e.g. which profile failed to parse).
var errMatrixShape = errors.New("model: matrix grid length does not match size*size")
