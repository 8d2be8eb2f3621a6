/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

// Disclaimer is shown next to every result that is not Low Risk.
const Disclaimer = "This assessment is based on the data provided and uses predictive modeling. " +
	"It is not a medical diagnosis. Please consult with a healthcare professional for proper medical advice and treatment."

// Guidance is the explanatory text shown alongside a result.
type Guidance struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RecommendationsFor string   `json:"recommendations_heading"`
	Recommendations    []string `json:"recommendations"`
	TipsLabel          string   `json:"tips_label"`
	ShowDisclaimer     bool     `json:"show_disclaimer"`
}

// GuidanceFor returns the guidance for a category, addressed to name when
// it is not empty. High Risk shares the Pre-Diabetic guidance.
func GuidanceFor(category Category, name string) Guidance {
	g := guidanceText(category, name)
	g.ShowDisclaimer = !category.IsLow()

	return g
}

func guidanceText(category Category, name string) Guidance {
	switch category {
	case CategoryLowRisk:
		return Guidance{
			Title: "Excellent News!",
			Description: greeting(name, "great", "Great") + " news! Your results indicate a low risk of diabetes. " +
				"Your health metrics are looking good. Keep maintaining your healthy lifestyle with regular exercise and balanced nutrition!",
			RecommendationsFor: "Keep Up These Habits:",
			Recommendations: []string{
				"Continue with regular physical activity",
				"Maintain a balanced, nutritious diet",
				"Get regular health check-ups annually",
				"Stay hydrated and get adequate sleep",
			},
			TipsLabel: "View Healthy Living Tips",
		}
	case CategoryDiabetic:
		return Guidance{
			Title: "Take Action - Diabetes is Manageable!",
			Description: greeting(name, "your", "Your") + " results indicate diabetic-level markers. " +
				"While this requires attention, remember: diabetes can be effectively managed with proper care. " +
				"Many people have successfully improved their condition through lifestyle modifications.",
			RecommendationsFor: "Recommended Actions:",
			Recommendations: []string{
				"Consult with a healthcare provider immediately",
				"Start a diabetes-friendly diet plan",
				"Engage in regular, moderate exercise",
				"Monitor blood glucose levels daily",
				"Consider natural supplements (consult doctor)",
				"Join a diabetes support group",
			},
			TipsLabel:      "Show Me Diabetes Management Tips",
		}
	default:
		return Guidance{
			Title: "You're in Control!",
			Description: greeting(name, "your", "Your") + " results suggest pre-diabetic indicators. " +
				"But here's the empowering truth: pre-diabetes is highly reversible! " +
				"With the right lifestyle changes, you can prevent diabetes and improve your health significantly.",
			RecommendationsFor: "Recommended Actions:",
			Recommendations: []string{
				"Adopt a low-sugar, whole-food diet",
				"Exercise for 30 minutes, 5 days a week",
				"Monitor your blood sugar regularly",
				"Reduce stress through meditation or yoga",
				"Get 7-8 hours of quality sleep",
			},
			TipsLabel:      "Yes, Show Me How to Reverse This",
		}
	}
}

// greeting prefixes word with name ("Sam, your") or returns the capitalised
// form when there is no name.
func greeting(name, word, capitalised string) string {
	if name == "" {
		return capitalised
	}

	return name + ", " + word
}
