package domain

import "errors"

var (
	ErrEmptyCatalog    = errors.New("catalog is empty")
	ErrMalformedUpdate = errors.New("malformed update")
)
