package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Targets holds the row-count targets and generation knobs for one seeding run.
type Targets struct {
	Customers          int64   `yaml:"customers"`
	MaxPetsPerCustomer int     `yaml:"max_pets_per_customer"`
	Checkups           int64   `yaml:"checkups"`
	Receipts           int64   `yaml:"receipts"`
	MaxItemsPerReceipt int     `yaml:"max_items_per_receipt"`
	ReviewRatio        float64 `yaml:"review_ratio"`
	BatchSize          int     `yaml:"batch_size"`
	DetailBatchSize    int     `yaml:"detail_batch_size"`
	HistoryYears       int     `yaml:"history_years"`
}

// Defaults returns the targets used when no file or flag overrides them.
func Defaults() Targets {
	return Targets{
		Customers:          70000,
		MaxPetsPerCustomer: 2,
		Checkups:           70000,
		Receipts:           70000,
		MaxItemsPerReceipt: 5,
		ReviewRatio:        0.35,
		BatchSize:          1000,
		DetailBatchSize:    2000,
		HistoryYears:       3,
	}
}

// LoadTargets reads a YAML targets file on top of Defaults. Keys missing
// from the file keep their default value.
func LoadTargets(path string) (Targets, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read targets file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse targets file %s: %w", path, err)
	}
	return t, t.Validate()
}

// Validate rejects targets that would make a generation phase meaningless.
func (t Targets) Validate() error {
	switch {
	case t.Customers < 0 || t.Checkups < 0 || t.Receipts < 0:
		return fmt.Errorf("row targets cannot be negative (customers=%d, checkups=%d, receipts=%d)",
			t.Customers, t.Checkups, t.Receipts)
	case t.MaxPetsPerCustomer < 1:
		return fmt.Errorf("max pets per customer must be at least 1, got %d", t.MaxPetsPerCustomer)
	case t.MaxItemsPerReceipt < 1:
		return fmt.Errorf("max items per receipt must be at least 1, got %d", t.MaxItemsPerReceipt)
	case t.ReviewRatio < 0 || t.ReviewRatio > 1:
		return fmt.Errorf("review ratio must be within [0, 1], got %g", t.ReviewRatio)
	case t.BatchSize < 1 || t.DetailBatchSize < 1:
		return fmt.Errorf("batch sizes must be positive (batch=%d, detail=%d)", t.BatchSize, t.DetailBatchSize)
	case t.HistoryYears < 1:
		return fmt.Errorf("history years must be at least 1, got %d", t.HistoryYears)
	}
	return nil
}
