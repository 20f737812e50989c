package operator

import "errors"

var (
	// ErrOutOfRange reports a DOF block or scale factor index beyond the
	// bounds of the partition or a target buffer
	ErrOutOfRange = errors.New("index out of range")

	// ErrShapeMismatch reports a local matrix whose dimensions disagree with
	// the addressed block or the partition element size
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnsupported reports a fast path invoked with a partition variant or
	// target that lacks the capability it needs
	ErrUnsupported = errors.New("unsupported partition or target")
)
