package repository

import (
	"fmt"
	"sort"
	"strings"

	"jobly/apperr"
)

// buildUpdate assembles a single parameterized UPDATE over an arbitrary
// subset of columns. Column names are checked against the table's
// allow-list so nothing from the request body is ever interpolated into
// SQL; values travel as placeholders. Columns are applied in sorted order
// to keep the statement deterministic.
func buildUpdate(table, keyColumn string, key interface{}, changes map[string]interface{}, allowed map[string]bool) (string, []interface{}, error) {
	if len(changes) == 0 {
		return "", nil, apperr.BadRequest("no fields to update")
	}

	columns := make([]string, 0, len(changes))
	for col := range changes {
		if !allowed[col] {
			return "", nil, apperr.BadRequest(fmt.Sprintf("cannot update field: %s", col))
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	set := make([]string, len(columns))
	args := make([]interface{}, 0, len(columns)+1)
	for i, col := range columns {
		set[i] = fmt.Sprintf("%s=$%d", col, i+1)
		args = append(args, changes[col])
	}
	args = append(args, key)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s=$%d",
		table, strings.Join(set, ", "), keyColumn, len(args))
	return query, args, nil
}

// updatedKey resolves the key to re-read a row by after an update: the
// new value when the changes rename the key column, the current one
// otherwise. A non-string rename is rejected rather than trusted.
func updatedKey(current, keyColumn string, changes map[string]interface{}) (string, error) {
	v, ok := changes[keyColumn]
	if !ok {
		return current, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", apperr.BadRequest(fmt.Sprintf("%s must be a string", keyColumn))
	}
	return s, nil
}

// filterChanges rejects any column outside the allow-list without
// building SQL; the Mongo repositories use it for the same guarantee.
func filterChanges(changes map[string]interface{}, allowed map[string]bool) error {
	if len(changes) == 0 {
		return apperr.BadRequest("no fields to update")
	}
	for col := range changes {
		if !allowed[col] {
			return apperr.BadRequest(fmt.Sprintf("cannot update field: %s", col))
		}
	}
	return nil
}
