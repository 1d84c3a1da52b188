package engine

// Threshold is one row of an ordered classification table: the label applies
// to any metric >= Min, until a higher row takes over.
type Threshold struct {
	Min   float64
	Label string
}

// Classify maps a continuous metric onto the highest threshold whose Min is
// not above it. Tables must be non-empty, start at a non-negative Min and be
// strictly ascending; anything else is a configuration error. A metric below
// the first row classifies as the first (default) label.
func Classify(metric float64, thresholds []Threshold) (string, error) {
	if len(thresholds) == 0 {
		return "", ErrInvalidThresholds
	}
	prev := -1.0
	for _, t := range thresholds {
		if t.Min < 0 || t.Min <= prev {
			return "", ErrInvalidThresholds
		}
		prev = t.Min
	}

	label := thresholds[0].Label
	for _, t := range thresholds {
		if metric >= t.Min {
			label = t.Label
		}
	}
	return label, nil
}

// GreenScaleLevels is the platform-wide progression over total units
// completed. The jump from 10 to 25 is the intended coarse progression, not
// a missing tier.
var GreenScaleLevels = []Threshold{
	{Min: 0, Label: "New Recruit"},
	{Min: 5, Label: "Nature Friend"},
	{Min: 10, Label: "Eco Explorer"},
	{Min: 25, Label: "Green Warrior"},
	{Min: 30, Label: "Environmental Hero"},
	{Min: 50, Label: "Eco Champion"},
}

// GreenScaleLevel classifies a learner's total completed units.
func GreenScaleLevel(totalUnitsCompleted int) string {
	label, _ := Classify(float64(totalUnitsCompleted), GreenScaleLevels)
	return label
}

// Ecosystems recognized by the badge system.
var Ecosystems = []string{"marine", "forest", "polar", "grassland", "mountains", "freshwater"}

// badgeMins is the badge progression shape, identical for every ecosystem.
var badgeMins = []float64{1, 3, 6, 10}

// ecosystemBadgeLabels holds the per-ecosystem badge names. Label text and
// emoji are display configuration, not logic.
var ecosystemBadgeLabels = map[string][4]string{
	"marine":     {"🐟 Reef Visitor", "🐬 Wave Rider", "🐋 Deep Diver", "🔱 Ocean Guardian"},
	"forest":     {"🌱 Seedling", "🌿 Canopy Scout", "🌳 Grove Keeper", "🦉 Forest Guardian"},
	"polar":      {"❄️ Frost Walker", "🐧 Ice Scout", "🐻‍❄️ Glacier Trekker", "🧊 Polar Guardian"},
	"grassland":  {"🌾 Meadow Wanderer", "🦓 Plains Runner", "🦁 Savanna Tracker", "🐘 Grassland Guardian"},
	"mountains":  {"⛰️ Foothill Hiker", "🏔️ Ridge Climber", "🦅 Summit Seeker", "🐐 Mountain Guardian"},
	"freshwater": {"💧 Stream Splasher", "🐸 River Explorer", "🦦 Wetland Ranger", "🐢 Freshwater Guardian"},
}

// EcosystemBadge returns the badge label for a per-ecosystem completion
// count, or "" while the learner is below the first badge or the ecosystem
// is unknown.
func EcosystemBadge(ecosystem string, unitsCompleted int) string {
	labels, ok := ecosystemBadgeLabels[ecosystem]
	if !ok {
		return ""
	}
	if unitsCompleted < int(badgeMins[0]) {
		return ""
	}
	table := make([]Threshold, len(badgeMins))
	for i, min := range badgeMins {
		table[i] = Threshold{Min: min, Label: labels[i]}
	}
	label, _ := Classify(float64(unitsCompleted), table)
	return label
}

// EcosystemBadgeLevel returns the 1-based badge level reached in an
// ecosystem, 0 when none.
func EcosystemBadgeLevel(unitsCompleted int) int {
	level := 0
	for _, min := range badgeMins {
		if float64(unitsCompleted) >= min {
			level++
		}
	}
	return level
}
