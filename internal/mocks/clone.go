package mocks

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// clone returns a deep copy of a stored entity so callers can mutate what a
// mock store hands back without changing the store, the same way a real
// store returns freshly scanned rows.
func clone[T any](src *T) *T {
	dst := new(T)
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("mocks: clone %T: %v", src, err))
	}
	return dst
}
