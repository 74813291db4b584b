package source

import "errors"

// Sentinel kinds for dataset loading errors. Both are fatal for the
// required datasets.
var (
	ErrReadDataset  = errors.New("read dataset failed")
	ErrParseDataset = errors.New("parse dataset failed")
)
