// Package domain holds the sentinel errors shared by the repository
// interfaces of its subpackages.
package domain

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
