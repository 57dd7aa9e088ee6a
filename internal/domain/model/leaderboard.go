package model

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	Name           string `json:"name"`
	College        string `json:"college"`
	TotalReferrals int    `json:"total_referrals"`
}
