package reputation

import (
	"dog-walk-service/errs"

	"gorm.io/gorm"
)

// WalkerSummary is one row of the public walker reputation listing.
// AverageRating is nil for walkers with no ratings yet.
type WalkerSummary struct {
	WalkerUsername string   `json:"walker_username"`
	TotalRatings   int64    `json:"total_ratings"`
	AverageRating  *float64 `json:"average_rating"`
	CompletedWalks int64    `json:"completed_walks"`
}

// Summaries returns one row per user with role=walker, whether or not they
// have ratings or completed walks. completed_walks counts requests where the
// walker's own application was accepted and the request finished, so a
// request with several applications is never counted twice.
func Summaries(db *gorm.DB) ([]WalkerSummary, error) {
	var rows []WalkerSummary
	err := db.Raw(`
		SELECT
			u.username AS walker_username,
			COUNT(r.id) AS total_ratings,
			ROUND(AVG(r.rating), 1) AS average_rating,
			(
				SELECT COUNT(*)
				FROM walk_applications a
				JOIN walk_requests wr ON a.request_id = wr.id
				WHERE a.walker_id = u.id
				  AND a.status = 'accepted'
				  AND wr.status = 'completed'
			) AS completed_walks
		FROM users u
		LEFT JOIN walk_ratings r ON r.walker_id = u.id
		WHERE u.role = 'walker'
		GROUP BY u.id
		ORDER BY u.username`).Scan(&rows).Error
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to compute walker summaries", err)
	}
	if rows == nil {
		rows = []WalkerSummary{}
	}
	return rows, nil
}
