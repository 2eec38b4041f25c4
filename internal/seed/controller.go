package seed

import (
	"context"
	"fmt"
	"strings"
)

// Remaining is how many rows must be generated to bring current up to target.
func Remaining(current, target int64) int64 {
	if current >= target {
		return 0
	}
	return target - current
}

type phaseMode int

const (
	// modeTarget generates the difference between the target and the current count.
	modeTarget phaseMode = iota
	// modeFillEmpty generates a fan-out of the parent table, only into an empty table.
	modeFillEmpty
	// modeRebuild replaces the table contents on every run.
	modeRebuild
)

type phaseFunc func(ctx context.Context, fab *Fabricator, remaining int64, onCommit func(int64)) (int64, error)

type phase struct {
	name   string
	table  Table
	mode   phaseMode
	target int64
	run    phaseFunc
}

// runPhase checks the current row count, decides whether the phase has
// work left and runs it.
func (s *Seeder) runPhase(ctx context.Context, fab *Fabricator, p phase) (res PhaseResult, err error) {
	start := s.Now()
	res = PhaseResult{Phase: p.name, Table: p.table, Target: p.target}
	defer func() {
		res.DurationSecs = s.Now().Sub(start).Seconds()
	}()

	remaining := int64(-1)
	if p.mode != modeRebuild {
		existing, err := s.store.Count(ctx, p.table)
		if err != nil {
			return res, fmt.Errorf("count %s: %w", p.table, err)
		}
		res.Existing = existing

		skip := existing > 0
		if p.mode == modeTarget {
			remaining = Remaining(existing, p.target)
			skip = remaining == 0
		}
		if skip {
			res.Skipped = true
			s.Reporter.PhaseSkip(p.name, existing)
			return res, nil
		}
	}

	s.Reporter.PhaseStart(p.name, remaining)
	n, err := p.run(ctx, fab, remaining, func(total int64) {
		s.Reporter.Progress(p.name, total)
	})
	res.Inserted = n
	if err != nil {
		return res, fmt.Errorf("%s: %w", p.name, err)
	}
	s.Reporter.PhaseDone(p.name, n)
	return res, nil
}

// Bootstrap loads master data when every master table is empty. It reports
// whether the script ran. A partially populated master set is an error:
// there is no safe way to tell which rows are missing.
func (s *Seeder) Bootstrap(ctx context.Context) (bool, error) {
	var empty []string
	for _, t := range MasterTables {
		n, err := s.store.Count(ctx, t)
		if err != nil {
			return false, fmt.Errorf("count %s: %w", t, err)
		}
		if n == 0 {
			empty = append(empty, string(t))
		}
	}

	switch {
	case len(empty) == 0:
		return false, nil
	case len(empty) < len(MasterTables):
		return false, fmt.Errorf("%w: empty tables %s", ErrPartialMasterData, strings.Join(empty, ", "))
	}

	if s.Script == nil {
		return false, ErrNoBootstrapScript
	}
	batches, err := s.Script()
	if err != nil {
		return false, fmt.Errorf("load bootstrap script: %w", err)
	}
	if len(batches) == 0 {
		return false, ErrNoBootstrapScript
	}

	s.Reporter.Notice("Master tables are empty, running bootstrap script (%d batches)", len(batches))
	if err := s.store.RunScript(ctx, batches); err != nil {
		return false, fmt.Errorf("run bootstrap script: %w", err)
	}
	return true, nil
}
