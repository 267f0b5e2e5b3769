package provider

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// SortGames orders games by date, then by ID.
func SortGames(games []Game) {
	slices.SortStableFunc(games, func(a, b Game) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// DecodeSeason reads a season file written by EncodeSeason.
func DecodeSeason(r io.Reader) (*Season, error) {
	var s Season
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode season file: %w", err)
	}
	if len(s.Teams) == 0 {
		return nil, fmt.Errorf("season file has no teams")
	}
	SortGames(s.Games)
	return &s, nil
}

// EncodeSeason writes s as indented JSON.
func EncodeSeason(w io.Writer, s *Season) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
