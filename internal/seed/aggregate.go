package seed

import (
	"context"
	"fmt"
)

// RebuildSpending replaces customer_spending with the completed-receipt
// totals per customer and year. The rebuild is not incremental, so two
// runs over unchanged receipts produce the same rows.
func (s *Seeder) RebuildSpending(ctx context.Context, onCommit func(int64)) (int64, error) {
	deleted, err := s.store.DeleteSpending(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear customer spending: %w", err)
	}
	if deleted > 0 {
		s.Reporter.Notice("Removed %d previous customer spending rows", deleted)
	}

	rows, err := s.store.SpendingByYear(ctx, ReceiptCompleted)
	if err != nil {
		return 0, fmt.Errorf("aggregate receipts: %w", err)
	}

	w := NewBatchWriter[CustomerSpending](s.targets.BatchSize, s.store.InsertSpending, onCommit)
	for _, row := range rows {
		if err := w.Add(ctx, row); err != nil {
			return w.Total(), err
		}
	}
	err = w.Flush(ctx)
	return w.Total(), err
}
