package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/ndhung1104/CSDLNC-09/internal/seed"
)

// --- Summary output ---

func printSummary(sum *seed.Summary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "============================================")
	fmt.Fprintln(out, " SEEDING SUMMARY")
	fmt.Fprintln(out, "============================================")
	fmt.Fprintf(out, "Run:              %s\n", sum.RunID)
	fmt.Fprintf(out, "Bootstrapped:     %t\n", sum.Bootstrapped)
	fmt.Fprintf(out, "Rows inserted:    %d\n", sum.Inserted())
	fmt.Fprintf(out, "Duration:         %.1fs\n", sum.DurationSecs)
	fmt.Fprintln(out)

	for _, p := range sum.Phases {
		icon := "OK"
		if p.Skipped {
			icon = "SKIP"
		}
		line := fmt.Sprintf("  [%s] %-18s existing %-8d inserted %-8d (%.1fs)",
			icon, p.Phase, p.Existing, p.Inserted, p.DurationSecs)
		if p.Target > 0 {
			line += fmt.Sprintf(" target %d", p.Target)
		}
		fmt.Fprintln(out, line)
	}
}

func writeSummaryJSON(sum *seed.Summary, path string) error {
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writeSummaryCSV(sum *seed.Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"run_id", "phase", "table", "existing", "target", "inserted", "skipped", "duration_secs"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range sum.Phases {
		row := []string{
			sum.RunID,
			p.Phase,
			string(p.Table),
			strconv.FormatInt(p.Existing, 10),
			strconv.FormatInt(p.Target, 10),
			strconv.FormatInt(p.Inserted, 10),
			strconv.FormatBool(p.Skipped),
			fmt.Sprintf("%.1f", p.DurationSecs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// writeSummaryFiles writes <base>.json and <base>.csv. Failures are logged,
// not returned.
func writeSummaryFiles(sum *seed.Summary, base string) {
	if base == "" {
		return
	}
	jsonPath, csvPath := base+".json", base+".csv"
	if err := writeSummaryJSON(sum, jsonPath); err != nil {
		log("[%s] Warning: failed to write JSON summary: %v", now(), err)
	} else {
		fmt.Fprintf(out, "\nJSON summary: %s\n", jsonPath)
	}
	if err := writeSummaryCSV(sum, csvPath); err != nil {
		log("[%s] Warning: failed to write CSV summary: %v", now(), err)
	} else {
		fmt.Fprintf(out, "CSV summary:  %s\n", csvPath)
	}
}
