package stream

import "iter"

// DefaultBatchSize bounds batches when the caller passes a non-positive size
const DefaultBatchSize = 10000

// Batches groups items into slices of at most size elements. Every batch is
// a fresh slice the consumer may keep. An error from items is yielded on its
// own, after any items already collected have been flushed, and ends the
// sequence.
func Batches[T any](items iter.Seq2[T, error], size int) iter.Seq2[[]T, error] {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return func(yield func([]T, error) bool) {
		batch := make([]T, 0, size)
		for item, err := range items {
			if err != nil {
				if len(batch) > 0 && !yield(batch, nil) {
					return
				}
				yield(nil, err)
				return
			}
			batch = append(batch, item)
			if len(batch) == size {
				if !yield(batch, nil) {
					return
				}
				batch = make([]T, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch, nil)
		}
	}
}
