package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/halloffame/hall-of-fame/models"
)

const maxNameLength = 30

// validateEntityName trims the candidate name and checks the shared
// length rules. It returns the trimmed name on success.
func validateEntityName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", ErrNameTooLong
	}
	return trimmed, nil
}

// newID mints an identifier from the current wall clock in milliseconds.
// Callers retry with the repository's ID-conflict sentinel when two
// entities are created within the same millisecond.
func newID() int64 {
	return time.Now().UnixMilli()
}

// newNameCollator returns a case-insensitive Italian collator.
// Collators are not safe for concurrent use, so one is built per call.
func newNameCollator() *collate.Collator {
	return collate.New(language.Italian, collate.IgnoreCase)
}

// Snapshot is a full copy of the persisted dataset, loaded in one pass
// and handed to the statistics engine or the backup writer.
type Snapshot struct {
	Players     []models.Player
	Games       []models.Game
	Matches     []models.Match
	Tournaments []models.Tournament
}
