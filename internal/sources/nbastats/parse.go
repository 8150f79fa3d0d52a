package nbastats

import (
	"encoding/json"
	"fmt"
	"strings"
)

const playersResultSet = "CommonAllPlayers"

type statsResponse struct {
	ResultSets []resultSet `json:"resultSets"`
}

// resultSet is the stats API's columnar table shape. Values are addressed by
// header name, never by position; the API reorders columns between seasons.
type resultSet struct {
	Name    string              `json:"name"`
	Headers []string            `json:"headers"`
	RowSet  [][]json.RawMessage `json:"rowSet"`
}

type rowReader struct {
	index map[string]int
}

func newRowReader(headers []string) *rowReader {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToUpper(h)] = i
	}
	return &rowReader{index: index}
}

func (r *rowReader) str(row []json.RawMessage, header string) string {
	i, ok := r.index[header]
	if !ok || i >= len(row) {
		return ""
	}
	var s string
	if err := json.Unmarshal(row[i], &s); err == nil {
		return s
	}
	// Numeric cells occasionally appear where strings are expected.
	var f float64
	if err := json.Unmarshal(row[i], &f); err == nil {
		return strings.TrimSuffix(fmt.Sprintf("%v", f), ".0")
	}
	return ""
}

func (r *rowReader) num(row []json.RawMessage, header string) (int, bool) {
	i, ok := r.index[header]
	if !ok || i >= len(row) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(row[i], &f); err != nil {
		return 0, false
	}
	return int(f), true
}

func findResultSet(payload statsResponse, name string) (*resultSet, error) {
	for i := range payload.ResultSets {
		if strings.EqualFold(payload.ResultSets[i].Name, name) {
			return &payload.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("%s: result set %q missing", sourceName, name)
}
