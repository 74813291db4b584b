package report

import (
	"errors"
	"fmt"
)

// Sentinel errors for artifact rendering and writing.
var (
	ErrEncodeArtifact = errors.New("encode artifact")
	ErrWriteArtifact  = errors.New("write artifact")
)

func wrapEncodeArtifact(err error) error {
	return fmt.Errorf("%w: %w", ErrEncodeArtifact, err)
}

func wrapWriteArtifact(err error) error {
	return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
}
