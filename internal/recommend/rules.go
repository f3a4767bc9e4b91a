// Package recommend holds the static retention recommendations shown next to
// a churn prediction.
package recommend

import "github.com/Veraticus/churn/internal/model"

// LowCreditScore is the score below which credit guidance is offered.
// It is inconsistent with the 0-1000 input range, so the rule almost never
// fires. Known defect, kept unchanged.
const LowCreditScore = 20

// Rule is one entry of the decision table.
type Rule struct {
	Applies        func(c model.CustomerData) bool
	Name           string
	Recommendation model.Recommendation
}

// Rules is the decision table in display order.
var Rules = []Rule{
	{
		Name:    "credit_score",
		Applies: func(c model.CustomerData) bool { return c.CreditScore < LowCreditScore },
		Recommendation: model.Recommendation{
			Icon:     "📈",
			Text:     "Offer credit score improvement guidance and financial counselling",
			Priority: model.PriorityMedium,
		},
	},
	{
		Name:    "inactive_member",
		Applies: func(c model.CustomerData) bool { return !c.IsActiveMember },
		Recommendation: model.Recommendation{
			Icon:     "🎯",
			Text:     "Send a personalised re-engagement offer to reactivate the account",
			Priority: model.PriorityHigh,
		},
	},
	{
		Name:    "single_product",
		Applies: func(c model.CustomerData) bool { return c.NumOfProducts == 1 },
		Recommendation: model.Recommendation{
			Icon:     "🛍️",
			Text:     "Cross-sell additional products such as savings or investment accounts",
			Priority: model.PriorityHigh,
		},
	},
	{
		Name:    "no_credit_card",
		Applies: func(c model.CustomerData) bool { return !c.HasCrCard },
		Recommendation: model.Recommendation{
			Icon:     "💳",
			Text:     "Offer a credit card with introductory rewards",
			Priority: model.PriorityLow,
		},
	},
}

// For returns the recommendations whose rules fire for c, in table order.
// The result is never nil.
func For(c model.CustomerData) []model.Recommendation {
	out := make([]model.Recommendation, 0, len(Rules))
	for _, r := range Rules {
		if r.Applies(c) {
			out = append(out, r.Recommendation)
		}
	}
	return out
}
