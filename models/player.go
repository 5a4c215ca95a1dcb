package models

// DefaultAvatar is used when a player is created without an explicit avatar.
const DefaultAvatar = "😊"

// DeletedPlayerName is the display placeholder for participants whose
// player record no longer exists.
const DeletedPlayerName = "Giocatore eliminato"

// Player is a leaderboard member. IDs are creation-time unix milliseconds,
// kept as-is on import so backups restore with stable identities.
type Player struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
