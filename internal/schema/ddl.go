package schema

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Ordered returns the given tables in dependency order using Kahn's
// algorithm. Tables without a dependency keep their relative input order.
func Ordered(tables []TableTemplate) []TableTemplate {
	index := make(map[string]int, len(tables))
	for i, t := range tables {
		index[t.Name] = i
	}

	// inDegree[child] = count of parent deps within the set
	inDegree := make([]int, len(tables))
	dependents := make(map[string][]int) // parent -> children
	for i, t := range tables {
		for _, fk := range t.ForeignKeys {
			if _, ok := index[fk.RefTable]; ok && fk.RefTable != t.Name {
				inDegree[i]++
				dependents[fk.RefTable] = append(dependents[fk.RefTable], i)
			}
		}
	}

	var queue []int
	for i, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, i)
		}
	}

	placed := make([]bool, len(tables))
	sorted := make([]TableTemplate, 0, len(tables))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		placed[i] = true
		sorted = append(sorted, tables[i])
		for _, child := range dependents[tables[i].Name] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	// a cycle leaves tables unplaced; append them so nothing is dropped
	for i, t := range tables {
		if !placed[i] {
			sorted = append(sorted, t)
		}
	}
	return sorted
}

// Names returns the table names in dependency order.
func Names() []string {
	ordered := Ordered(Tables())
	names := make([]string, len(ordered))
	for i, t := range ordered {
		names[i] = t.Name
	}
	return names
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// GenerateDDL produces the CREATE TABLE and CREATE INDEX statements for a template.
func GenerateDDL(tmpl TableTemplate) []string {
	var stmts []string

	var cols []string
	for _, c := range tmpl.Columns {
		col := fmt.Sprintf("  %s %s", ident(c.Name), c.Type)
		if c.Unique {
			col += " UNIQUE"
		}
		if !c.Nullable {
			col += " NOT NULL"
		}
		if c.Default != "" {
			col += " DEFAULT " + c.Default
		}
		cols = append(cols, col)
	}

	if len(tmpl.PrimaryKey) > 0 {
		quoted := make([]string, len(tmpl.PrimaryKey))
		for i, c := range tmpl.PrimaryKey {
			quoted[i] = ident(c)
		}
		cols = append(cols, fmt.Sprintf("  CONSTRAINT %s PRIMARY KEY (%s)",
			ident("pk_"+tmpl.Name), strings.Join(quoted, ", ")))
	}

	for _, fk := range tmpl.ForeignKeys {
		onDelete := "RESTRICT"
		if fk.OnDelete != "" {
			onDelete = fk.OnDelete
		}
		cols = append(cols, fmt.Sprintf("  CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s",
			ident(fmt.Sprintf("fk_%s_%s", tmpl.Name, fk.Column)),
			ident(fk.Column),
			ident(fk.RefTable),
			ident(fk.RefColumn),
			onDelete,
		))
	}

	for i, check := range tmpl.Checks {
		cols = append(cols, fmt.Sprintf("  CONSTRAINT %s CHECK (%s)",
			ident(fmt.Sprintf("ck_%s_%d", tmpl.Name, i+1)), check))
	}

	stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)",
		ident(tmpl.Name),
		strings.Join(cols, ",\n"),
	))

	for _, idx := range tmpl.Indexes {
		quoted := make([]string, len(idx.Columns))
		for i, c := range idx.Columns {
			quoted[i] = ident(c)
		}
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmts = append(stmts, fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
			unique,
			ident(idx.Name),
			ident(tmpl.Name),
			strings.Join(quoted, ", "),
		))
	}

	return stmts
}

// CreateStatements returns the DDL for every clinic table in creation order.
func CreateStatements() []string {
	var stmts []string
	for _, t := range Ordered(Tables()) {
		stmts = append(stmts, GenerateDDL(t)...)
	}
	return stmts
}
