package client

import "encoding/json"

// DocumentView holds a local copy of a server document and applies edits
// optimistically: the mutation lands on the local copy first, then the commit
// runs against the server, and a failed commit rolls the copy back to the
// pre-mutation snapshot.
type DocumentView[T any] struct {
	doc T
}

func NewDocumentView[T any](doc T) *DocumentView[T] {
	return &DocumentView[T]{doc: doc}
}

// Current returns the local copy.
func (v *DocumentView[T]) Current() T {
	return v.doc
}

// Replace swaps in a fresh server copy, discarding local state.
func (v *DocumentView[T]) Replace(doc T) {
	v.doc = doc
}

// Apply mutates the local copy, then commits. If commit fails the local copy
// is restored from a deep snapshot taken before the mutation.
func (v *DocumentView[T]) Apply(mutate func(*T), commit func(T) error) error {
	snapshot, err := deepCopy(v.doc)
	if err != nil {
		return err
	}

	mutate(&v.doc)
	if err := commit(v.doc); err != nil {
		v.doc = snapshot
		return err
	}
	return nil
}

// deepCopy goes through JSON so nested slices and maps detach from the
// original.
func deepCopy[T any](doc T) (T, error) {
	var out T
	buf, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(buf, &out); err != nil {
		return out, err
	}
	return out, nil
}
