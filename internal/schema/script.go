package schema

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed master.sql
var defaultMaster string

// DefaultMaster returns the embedded master-data script.
func DefaultMaster() string {
	return defaultMaster
}

// SplitBatches splits a script into batches on lines holding only the GO
// delimiter (case-insensitive). Empty batches are dropped.
func SplitBatches(script string) []string {
	var (
		batches []string
		cur     strings.Builder
	)
	flush := func() {
		if b := strings.TrimSpace(cur.String()); b != "" && !commentOnly(b) {
			batches = append(batches, b)
		}
		cur.Reset()
	}

	sc := bufio.NewScanner(strings.NewReader(script))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.EqualFold(strings.TrimSpace(line), "GO") {
			flush()
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	flush()
	return batches
}

func commentOnly(batch string) bool {
	for _, line := range strings.Split(batch, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}

// LoadMaster reads the master-data script at path, or the embedded default
// when path is empty, and returns its batches.
func LoadMaster(path string) ([]string, error) {
	if path == "" {
		return SplitBatches(defaultMaster), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read master script: %w", err)
	}
	return SplitBatches(string(data)), nil
}
