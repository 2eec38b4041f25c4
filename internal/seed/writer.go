package seed

import (
	"context"
	"fmt"
)

// InsertFunc writes one batch and commits it, returning the rows written.
type InsertFunc[T any] func(ctx context.Context, batch []T) (int64, error)

// BatchWriter buffers records and writes them in fixed-size committed batches.
type BatchWriter[T any] struct {
	insert   InsertFunc[T]
	size     int
	buf      []T
	total    int64
	onCommit func(total int64)
}

// NewBatchWriter returns a writer flushing every size records. onCommit, if
// set, receives the cumulative row count after each committed batch.
func NewBatchWriter[T any](size int, insert InsertFunc[T], onCommit func(total int64)) *BatchWriter[T] {
	if size < 1 {
		size = 1
	}
	return &BatchWriter[T]{
		insert:   insert,
		size:     size,
		buf:      make([]T, 0, size),
		onCommit: onCommit,
	}
}

// Add buffers rec and writes the buffer once it is full.
func (w *BatchWriter[T]) Add(ctx context.Context, rec T) error {
	w.buf = append(w.buf, rec)
	if len(w.buf) < w.size {
		return nil
	}
	return w.Flush(ctx)
}

// Flush writes whatever is buffered. It is a no-op on an empty buffer.
func (w *BatchWriter[T]) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	n, err := w.insert(ctx, w.buf)
	if err != nil {
		return fmt.Errorf("write batch of %d after %d rows: %w", len(w.buf), w.total, err)
	}
	w.total += n
	w.buf = w.buf[:0]
	if w.onCommit != nil {
		w.onCommit(w.total)
	}
	return nil
}

// Total is the number of rows committed so far.
func (w *BatchWriter[T]) Total() int64 {
	return w.total
}
