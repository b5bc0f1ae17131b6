package sheet

import "fmt"

// move returns a copy of list with the element at from removed and
// re-inserted at to. to is applied to the shortened list, so moving an
// element forward lands it at exactly index to in the result.
func move[T any](list []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return list, fmt.Errorf("move %d -> %d in list of %d: %w", from, to, len(list), ErrIndexOutOfRange)
	}

	out := make([]T, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	removed := list[from]
	out = append(out, removed)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = removed
	return out, nil
}
