package models

type GameType string

const (
	GameTypeBoard  GameType = "board"
	GameTypeCard   GameType = "card"
	GameTypeGarden GameType = "garden"
	GameTypeSport  GameType = "sport"
	GameTypeOther  GameType = "other"
)

func (t GameType) Valid() bool {
	switch t {
	case GameTypeBoard, GameTypeCard, GameTypeGarden, GameTypeSport, GameTypeOther:
		return true
	}
	return false
}

type Game struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Type GameType `json:"type"`
}

// GameRef is the compact form used by the best-player badge queries.
type GameRef struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Type GameType `json:"type"`
}

func (g Game) Ref() GameRef {
	return GameRef{ID: g.ID, Name: g.Name, Type: g.Type}
}
