package resumepdf

// Tier is a proficiency tier. Its string value is the key of the tier
// label in Skills.Levels.
type Tier string

const (
	TierExpert       Tier = "expert"
	TierAdvanced     Tier = "advanced"
	TierIntermediate Tier = "intermediate"
	TierBasic        Tier = "basic"
	TierBeginner     Tier = "beginner"
)

// Tiers lists every tier from highest to lowest.
var Tiers = []Tier{TierExpert, TierAdvanced, TierIntermediate, TierBasic, TierBeginner}

// TierFor maps a 0-100 level to its tier. Lower bounds are inclusive.
func TierFor(level float64) Tier {
	switch {
	case level >= 90:
		return TierExpert
	case level >= 70:
		return TierAdvanced
	case level >= 50:
		return TierIntermediate
	case level >= 30:
		return TierBasic
	}
	return TierBeginner
}

// ProficiencyLabel returns the localized label of the tier for level.
func (s Skills) ProficiencyLabel(level float64) string {
	return s.Levels[TierFor(level)]
}

func clampLevel(level float64) float64 {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
