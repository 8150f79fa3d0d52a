package nbastats

import (
	"fmt"
	"strings"

	"scout-data-service/internal/domain"
)

func mapPlayers(payload statsResponse) ([]domain.PlayerRecord, error) {
	set, err := findResultSet(payload, playersResultSet)
	if err != nil {
		return nil, err
	}

	reader := newRowReader(set.Headers)
	records := make([]domain.PlayerRecord, 0, len(set.RowSet))

	for _, row := range set.RowSet {
		personID, ok := reader.num(row, "PERSON_ID")
		if !ok || personID == 0 {
			continue
		}
		name := strings.TrimSpace(reader.str(row, "DISPLAY_FIRST_LAST"))
		if name == "" {
			continue
		}

		id := personID
		active := false
		if status, ok := reader.num(row, "ROSTERSTATUS"); ok {
			active = status == 1
		}

		records = append(records, domain.PlayerRecord{
			Name:          name,
			NBAPlayerID:   &id,
			Active:        &active,
			HeadshotURL:   fmt.Sprintf(headshotURLPattern, personID),
			CanonicalName: true,
			Source:        sourceName,
		})
	}

	return records, nil
}
