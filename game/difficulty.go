package game

// DifficultyScorer rates how hard a habit is on a 1-10 scale. An AI-backed
// scorer can be plugged in here; the app works without one.
type DifficultyScorer interface {
	Score(name, description, frequency string) int
}

// HeuristicScorer is the deterministic fallback scorer: difficulty starts
// from the frequency and shifts with the description length, which stands in
// for task complexity.
type HeuristicScorer struct{}

// Score implements DifficultyScorer.
func (HeuristicScorer) Score(name, description, frequency string) int {
	base := 5
	switch frequency {
	case "daily":
		base = 4
	case "weekly":
		base = 5
	case "monthly":
		base = 6
	}

	d := base
	if len(description) < 50 {
		d = base - 1
	} else if len(description) > 150 {
		d = base + 2
	}

	if d < 1 {
		d = 1
	} else if d > 10 {
		d = 10
	}
	return d
}
