package service

import (
	"errors"
	"fmt"
)

var ErrTooManyBlocks = errors.New("contentservice: too many blocks")

func newTooManyBlocksError(count, limit int) error {
	return fmt.Errorf("%w: got %d, limit is %d", ErrTooManyBlocks, count, limit)
}
