/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

// Tip is one healthy-living suggestion.
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Benefits    string `json:"benefits"`
}

// Tips groups the healthy-living suggestions shown to users.
type Tips struct {
	Exercises []Tip    `json:"exercises"`
	Remedies  []Tip    `json:"remedies"`
	Dietary   []Tip    `json:"dietary"`
	Lifestyle []string `json:"lifestyle"`
}

// TipsNotice accompanies the tips page.
const TipsNotice = "Pre-diabetes and early type 2 diabetes can often be reversed with diet, exercise and lifestyle changes. " +
	"Talk to a qualified healthcare professional before changing your diet or exercise routine, especially if you take medication."

// HealthTips returns the suggestions shown on the tips page.
func HealthTips() Tips {
	return Tips{
		Exercises: []Tip{
			{
				Title:       "Daily Walking",
				Description: "Walk for 30 to 45 minutes every day. Morning walks outdoors work well for blood sugar control.",
				Benefits:    "Improves insulin sensitivity, helps manage weight, reduces stress and lowers blood glucose",
			},
			{
				Title:       "Surya Namaskar (Sun Salutation)",
				Description: "A flowing sequence of 12 yoga poses. Practice 5 to 10 rounds a day, ideally around sunrise.",
				Benefits:    "Stimulates the pancreas, boosts metabolism, burns calories and tones the whole body",
			},
			{
				Title:       "Paschimottanasana (Seated Forward Bend)",
				Description: "Sit with legs extended and bend forward towards your toes. Hold 30 to 60 seconds, 3 to 5 times.",
				Benefits:    "Massages the abdominal organs, stimulates pancreas and liver, aids digestion",
			},
			{
				Title:       "Dhanurasana (Bow Pose)",
				Description: "Lie on your stomach, hold your ankles and lift chest and thighs. Hold 15 to 30 seconds, 3 to 4 times.",
				Benefits:    "Strengthens the abdomen, supports blood sugar regulation, improves digestion",
			},
			{
				Title:       "Trikonasana (Triangle Pose)",
				Description: "Stand with legs wide apart and bend sideways towards one foot while raising the other arm. Hold 30 seconds per side.",
				Benefits:    "Improves circulation, stimulates abdominal organs, reduces stress and improves balance",
			},
			{
				Title:       "Pranayama (Breathing Exercises)",
				Description: "Practice alternate nostril breathing (Anulom Vilom) and Kapalbhati for 10 to 15 minutes a day.",
				Benefits:    "Lowers stress hormones, improves oxygen supply and insulin sensitivity",
			},
		},
		Remedies: []Tip{
			{
				Title:       "Bitter Gourd (Karela)",
				Description: "Drink karela juice on an empty stomach or eat cooked karela 2 to 3 times a week.",
				Benefits:    "Contains compounds that act like insulin and help lower blood glucose",
			},
			{
				Title:       "Fenugreek Seeds (Methi)",
				Description: "Soak 1 to 2 tablespoons of seeds in water overnight. Drink the water and eat the seeds in the morning.",
				Benefits:    "Rich in fibre, slows the absorption of carbohydrates",
			},
			{
				Title:       "Indian Gooseberry (Amla)",
				Description: "Eat 1 to 2 fresh amlas a day or take 2 to 3 tablespoons of amla juice diluted in water.",
				Benefits:    "High in vitamin C, supports carbohydrate metabolism and insulin secretion",
			},
		},
		Dietary: []Tip{
			{
				Title:       "Leafy Greens and Vegetables",
				Description: "Include spinach, fenugreek leaves, bottle gourd, bitter gourd and other non-starchy vegetables.",
				Benefits:    "Low in calories and high in fibre, helps control blood sugar",
			},
		},
		Lifestyle: []string{
			"Get 7 to 8 hours of quality sleep every night",
			"Manage stress with meditation and breathing exercises",
			"Drink 8 to 10 glasses of water a day",
			"Avoid refined sugar and processed food",
			"Eat smaller, more frequent meals instead of three large ones",
			"Choose whole grains like brown rice, oats and millets",
			"Limit alcohol and quit smoking",
			"Monitor your blood sugar regularly",
			"Keep a healthy weight through diet and exercise",
			"Take medication as prescribed by your doctor",
		},
	}
}
