package pricing

import "math"

// KFactor is the fixed Elo K-factor applied after each completed match.
const KFactor = 32

// NextRatings returns updated Elo ratings for the winner and loser of a
// match. Expected scores come from the same logistic curve that seeds
// prices; actual scores are 1 for the winner and 0 for the loser.
func NextRatings(winnerRating, loserRating int) (newWinner, newLoser int) {
	expectedWinner := 1 / (1 + math.Pow(10, float64(loserRating-winnerRating)/400))
	expectedLoser := 1 - expectedWinner

	newWinner = int(math.Round(float64(winnerRating) + KFactor*(1-expectedWinner)))
	newLoser = int(math.Round(float64(loserRating) + KFactor*(0-expectedLoser)))

	return newWinner, newLoser
}
