// Package theme maps the engine's perfect-day streak integer onto the
// gamification progress skins. Each theme is a static threshold table; no
// streak logic lives here.
package theme

// Stage is one step of a theme's progression.
type Stage struct {
	Name string `json:"name"`

	// MinDays is the perfect-day streak required to reach this stage.
	MinDays int `json:"min_days"`
}

// Theme is a named progression skin.
type Theme struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Stages []Stage `json:"stages"`
}

// Garden is the bonsai growth progression.
var Garden = Theme{
	ID:   "garden",
	Name: "Bonsai Garden",
	Stages: []Stage{
		{Name: "Tiny Sprout", MinDays: 0},
		{Name: "Young Sapling", MinDays: 4},
		{Name: "Growing Tree", MinDays: 8},
		{Name: "Developing Bonsai", MinDays: 13},
		{Name: "Maturing Bonsai", MinDays: 19},
		{Name: "Elegant Bonsai", MinDays: 26},
		{Name: "Blooming Bonsai", MinDays: 34},
		{Name: "Magnificent Bonsai", MinDays: 43},
		{Name: "Masterpiece Bonsai", MinDays: 55},
	},
}

// Mountain is the climb progression.
var Mountain = Theme{
	ID:   "mountain",
	Name: "Mountain Climb",
	Stages: []Stage{
		{Name: "Trailhead", MinDays: 0},
		{Name: "Foothills", MinDays: 3},
		{Name: "Base Camp", MinDays: 7},
		{Name: "Camp One", MinDays: 14},
		{Name: "Camp Two", MinDays: 21},
		{Name: "High Camp", MinDays: 30},
		{Name: "Ridge Line", MinDays: 45},
		{Name: "Death Zone", MinDays: 60},
		{Name: "Summit", MinDays: 90},
	},
}

// Ocean is the reef-recovery progression.
var Ocean = Theme{
	ID:   "ocean",
	Name: "Ocean Explorer",
	Stages: []Stage{
		{Name: "Clownfish", MinDays: 1},
		{Name: "Blue Tang", MinDays: 3},
		{Name: "Seahorse", MinDays: 5},
		{Name: "Pufferfish", MinDays: 7},
		{Name: "Manta Ray", MinDays: 10},
		{Name: "Sea Turtle", MinDays: 15},
		{Name: "Dolphin", MinDays: 20},
		{Name: "Hammerhead", MinDays: 30},
		{Name: "Orca", MinDays: 50},
		{Name: "Blue Whale", MinDays: 100},
	},
}

// Themes lists every available progression skin.
var Themes = []Theme{Garden, Mountain, Ocean}

// StageFor returns the highest stage whose threshold the given completed-day
// count meets, or nil when no stage is reached yet.
func (t Theme) StageFor(totalCompletedDays int) *Stage {
	var current *Stage
	for i := range t.Stages {
		if totalCompletedDays >= t.Stages[i].MinDays {
			current = &t.Stages[i]
		}
	}
	return current
}

// Next returns the first stage above the given completed-day count, or nil
// at the top of the progression.
func (t Theme) Next(totalCompletedDays int) *Stage {
	for i := range t.Stages {
		if t.Stages[i].MinDays > totalCompletedDays {
			return &t.Stages[i]
		}
	}
	return nil
}

// ByID looks a theme up by its identifier.
func ByID(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}
