package gamify

import "civitech/internal/content"

// LevelForPoints resolves the highest level whose threshold the points
// meet. The ladder is assumed sorted by MinPoints ascending, as the content
// package declares it.
func LevelForPoints(levels []content.Level, points int) content.Level {
	if len(levels) == 0 {
		return content.Level{Level: 1}
	}
	current := levels[0]
	for _, l := range levels {
		if points >= l.MinPoints {
			current = l
		}
	}
	return current
}
