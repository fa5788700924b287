package service

import "github.com/sajhahub/sajha-hub-backend/internal/domain"

const (
	postingRewardHighRisk = 1.0
	postingRewardStandard = 0.5

	blogRewardBase    = 1.0
	blogRewardFloor   = 2.0
	blogRewardCeiling = 10.0
)

// highRiskCategories require document verification before a submission goes
// live and earn the full posting reward.
var highRiskCategories = map[domain.Category]struct{}{
	domain.CategoryRental:   {},
	domain.CategoryServices: {},
	domain.CategoryConcerts: {},
	domain.CategoryJobs:     {},
	domain.CategoryBusiness: {},
}

func HighRiskCategory(category domain.Category) bool {
	_, ok := highRiskCategories[category]
	return ok
}

func PostingReward(category domain.Category) float64 {
	if HighRiskCategory(category) {
		return postingRewardHighRisk
	}
	return postingRewardStandard
}

// BlogReward converts an authenticity score into banked credits. Generic
// content earns the base reward only; original content earns a tenth of its
// score, floored at 2 and capped at 10.
func BlogReward(score domain.AuthenticityScore) float64 {
	if score.General {
		return blogRewardBase
	}
	reward := float64(score.Score) / 10
	if reward < blogRewardFloor {
		reward = blogRewardFloor
	}
	if reward > blogRewardCeiling {
		reward = blogRewardCeiling
	}
	return reward
}

// SpendCredits deducts a cost from a balance, clamping at zero. Balances
// never go negative.
func SpendCredits(balance, cost float64) float64 {
	remaining := balance - cost
	if remaining < 0 {
		return 0
	}
	return remaining
}
