package handler

import (
	"strconv"
	"strings"

	apperrors "famreg/internal/errors"
)

// parseIDList parses a comma-separated id query value ("1,2,3"). An empty
// value means no filter; anything that is not a positive integer is a client
// error.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, apperrors.ErrInvalidIDList
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
