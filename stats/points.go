package stats

import (
	"math"

	"github.com/halloffame/hall-of-fame/models"
)

// MaxPointsPerMatch is the ceiling a player can earn in one match.
const MaxPointsPerMatch = 2

var positionPoints = map[models.Position]int{
	models.PositionWinner:      2,
	models.PositionParticipant: 1,
	models.PositionLast:        0,
}

// PointsForPosition returns the fixed score for a finishing position.
// Unknown positions earn nothing.
func PointsForPosition(pos models.Position) int {
	return positionPoints[pos]
}

// performancePercent normalizes earned points against the maximum possible,
// rounding half away from zero. Zero matches means zero performance.
func performancePercent(totalPoints, gamesPlayed int) int {
	if gamesPlayed == 0 {
		return 0
	}
	max := float64(gamesPlayed * MaxPointsPerMatch)
	return int(math.Round(float64(totalPoints) / max * 100))
}
