package sdg

// Goal describes one UN Sustainable Development Goal and the keyword phrases
// that indicate alignment with it.
type Goal struct {
	Code     string
	Label    string
	Keywords []string
}

// Goals holds the seventeen goals in numeric order. Keyword lists are tuned
// jointly with the matching threshold; editing one without rechecking the
// other shifts detection rates across the whole corpus.
var Goals = []Goal{
	{
		Code:  "SDG_1",
		Label: "No Poverty",
		Keywords: []string{
			"poverty", "poor", "low-income", "vulnerable", "disadvantaged",
			"economic inequality", "welfare", "subsistence", "destitution",
			"extreme poverty", "absolute poverty", "poverty alleviation",
			"impoverished", "impoverishment", "deprivation", "inequitable",
			"income inequality", "wealth gap", "economic disparity",
		},
	},
	{
		Code:  "SDG_2",
		Label: "Zero Hunger",
		Keywords: []string{
			"hunger", "food security", "malnutrition", "famine", "starvation",
			"agriculture", "crop", "farming", "livestock", "nutrition",
			"food production", "agricultural productivity", "food supply",
			"subsistence farming", "food insecurity", "dietary", "nutritional",
		},
	},
	{
		Code:  "SDG_3",
		Label: "Good Health and Well-being",
		Keywords: []string{
			"health", "disease", "medical", "healthcare", "illness", "wellness",
			"hospital", "clinic", "physician", "medicine", "treatment", "vaccine",
			"mortality", "morbidity", "epidemiology", "pandemic", "epidemic",
			"mental health", "well-being", "healthy", "sanitation", "hygiene",
		},
	},
	{
		Code:  "SDG_4",
		Label: "Quality Education",
		Keywords: []string{
			"education", "learning", "school", "university", "student",
			"teacher", "curriculum", "academic", "literacy", "training",
			"skill development", "educational", "pedagogical", "didactic",
			"higher education", "primary education", "secondary education",
			"quality education", "equal education",
		},
	},
	{
		Code:  "SDG_5",
		Label: "Gender Equality",
		Keywords: []string{
			"gender equality", "gender", "women", "female", "woman",
			"feminism", "feminist", "discrimination", "bias", "equity",
			"women's rights", "gender-based violence", "sexual harassment",
			"empowerment", "gender parity", "male-female", "gender gap",
		},
	},
	{
		Code:  "SDG_6",
		Label: "Clean Water and Sanitation",
		Keywords: []string{
			"water", "sanitation", "hygiene", "clean water", "drinking water",
			"water supply", "water treatment", "wastewater", "sewage",
			"water quality", "water scarcity", "water pollution", "aquatic",
			"hydration", "water security", "water resources",
		},
	},
	{
		Code:  "SDG_7",
		Label: "Affordable and Clean Energy",
		Keywords: []string{
			"energy", "renewable", "solar", "wind", "hydroelectric", "geothermal",
			"fossil fuel", "electricity", "power", "clean energy", "sustainable energy",
			"energy efficiency", "energy access", "energy security", "biofuel",
			"nuclear energy", "energy transition",
		},
	},
	{
		Code:  "SDG_8",
		Label: "Decent Work and Economic Growth",
		Keywords: []string{
			"employment", "jobs", "work", "labor", "labour", "wage", "workplace",
			"economic growth", "economic development", "productivity", "entrepreneurship",
			"business", "decent work", "working conditions", "unemployment",
			"formal employment", "informal economy",
		},
	},
	{
		Code:  "SDG_9",
		Label: "Industry, Innovation and Infrastructure",
		Keywords: []string{
			"infrastructure", "industry", "innovation", "technology", "industrial",
			"manufacturing", "construct", "bridge", "road", "transport",
			"innovation", "research", "development", "industrial development",
			"resilient infrastructure", "sustainable industry", "ict",
		},
	},
	{
		Code:  "SDG_10",
		Label: "Reduced Inequalities",
		Keywords: []string{
			"inequality", "inequitable", "inequity", "discrimination", "marginalize",
			"disadvantaged", "vulnerable", "disparity", "gap", "unequal",
			"social inclusion", "social cohesion", "redistribution", "equity",
		},
	},
	{
		Code:  "SDG_11",
		Label: "Sustainable Cities and Communities",
		Keywords: []string{
			"city", "urban", "community", "settlement", "housing", "slum",
			"sustainable city", "sustainable community", "livable", "resilient",
			"disaster reduction", "infrastructure", "pollution", "green space",
			"public transport", "municipal",
		},
	},
	{
		Code:  "SDG_12",
		Label: "Responsible Consumption and Production",
		Keywords: []string{
			"consumption", "production", "waste", "recycle", "circular economy",
			"sustainable consumption", "responsible consumption", "resource",
			"material", "pollution", "sustainable management", "reduce",
			"reuse", "repurpose", "lifecycle", "footprint",
		},
	},
	{
		Code:  "SDG_13",
		Label: "Climate Action",
		Keywords: []string{
			"climate", "global warming", "greenhouse gas", "carbon", "emissions",
			"temperature", "weather", "climate change", "mitigation", "adaptation",
			"climate action", "climate variability", "extreme weather", "gdp",
			"carbon dioxide", "methane", "environmental",
		},
	},
	{
		Code:  "SDG_14",
		Label: "Life Below Water",
		Keywords: []string{
			"ocean", "marine", "sea", "aquatic", "fish", "fishing", "coral",
			"marine ecosystem", "biodiversity", "ocean acidification", "pollution",
			"overfishing", "sustainable fisheries", "coastal", "blue economy",
			"maritime", "water body",
		},
	},
	{
		Code:  "SDG_15",
		Label: "Life on Land",
		Keywords: []string{
			"forest", "woodland", "terrestrial", "ecosystem", "biodiversity",
			"species", "wildlife", "conservation", "endangered", "habitat",
			"deforestation", "land degradation", "desertification", "wetland",
			"vegetation", "fauna", "flora",
		},
	},
	{
		Code:  "SDG_16",
		Label: "Peace, Justice and Strong Institutions",
		Keywords: []string{
			"peace", "justice", "institution", "governance", "corruption",
			"violence", "conflict", "law enforcement", "legal", "rule of law",
			"human rights", "discrimination", "accountability", "transparency",
			"democratic", "inclusive",
		},
	},
	{
		Code:  "SDG_17",
		Label: "Partnerships for the Goals",
		Keywords: []string{
			"partnership", "collaboration", "cooperation", "stakeholder", "multi-stakeholder",
			"network", "alliance", "development", "finance", "investment",
			"technology transfer", "capacity building", "global partnership",
			"sustainable development",
		},
	},
}

// LabelFor returns the human-readable label for a goal code, or the code
// itself when it is unknown.
func LabelFor(code string) string {
	for _, goal := range Goals {
		if goal.Code == code {
			return goal.Label
		}
	}
	return code
}

// KeywordsFor returns the keyword list for a goal code, or nil when the code
// is unknown. Useful for documentation and threshold tuning.
func KeywordsFor(code string) []string {
	for _, goal := range Goals {
		if goal.Code == code {
			return goal.Keywords
		}
	}
	return nil
}

// ValidCode reports whether code names one of the seventeen goals.
func ValidCode(code string) bool {
	for _, goal := range Goals {
		if goal.Code == code {
			return true
		}
	}
	return false
}
