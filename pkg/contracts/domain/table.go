package domain

// Table holds raw tabular data as read from a CSV file, before any
// cleaning or type coercion. Headers preserve source column order.
type Table struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists in the table.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Len returns the number of data rows (excluding the header).
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the value at the given row and named column. The second
// return value is false when the column is absent or the row is ragged
// short of the column position.
func (t *Table) Cell(row int, column string) (string, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	if idx >= len(t.Rows[row]) {
		return "", false
	}
	return t.Rows[row][idx], true
}
