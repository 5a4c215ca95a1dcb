package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name is too long")
	ErrDescriptionRequired    = errors.New("description is required")
	ErrStartDateRequired      = errors.New("start date is required")
	ErrInvalidDateRange       = errors.New("end date cannot be before start date")
	ErrInvalidGameType        = errors.New("invalid game type")
	ErrInvalidPosition        = errors.New("invalid participant position")
	ErrInvalidSortOrder       = errors.New("invalid sort order")
	ErrInvalidCriteria        = errors.New("invalid top players criteria")
	ErrMatchDateRequired      = errors.New("match date is required")
	ErrMatchGameRequired      = errors.New("match game is required")
	ErrNotEnoughParticipants  = errors.New("a match needs at least two participants")
	ErrDuplicateParticipant   = errors.New("a player cannot appear twice in one match")
	ErrMatchOutsideTournament = errors.New("match date falls outside the tournament window")

	// Conflicts
	ErrPlayerNameConflict     = errors.New("player name is already in use")
	ErrGameNameConflict       = errors.New("game name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name is already in use")

	// Entity lookups
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")

	// Auth
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Backup
	ErrBackupInvalidArchive   = errors.New("backup archive is not valid")
	ErrBackupInvalidStructure = errors.New("backup data structure is missing or not correct")
)
