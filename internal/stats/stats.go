// Package stats combines character attributes with equipment bonuses.
package stats

import "github.com/KirkDiggler/duelhall/internal/models"

// Aggregate returns base plus every bonus, field by field
func Aggregate(base models.Stats, bonuses ...models.Stats) models.Stats {
	total := base
	for _, b := range bonuses {
		total.Strength += b.Strength
		total.Agility += b.Agility
		total.Intelligence += b.Intelligence
		total.Faith += b.Faith
	}
	return total
}

const balanceSuffix = "of Balance"

// DisplayName decorates an item name with its dominant bonus.
// A tie between two or more fields at the maximum yields "of Balance".
func DisplayName(baseName string, bonus models.Stats) string {
	fields := []struct {
		suffix string
		value  int
	}{
		{"of Strength", bonus.Strength},
		{"of Agility", bonus.Agility},
		{"of Intelligence", bonus.Intelligence},
		{"of Faith", bonus.Faith},
	}

	top := fields[0].value
	for _, f := range fields[1:] {
		if f.value > top {
			top = f.value
		}
	}
	if top <= 0 {
		return baseName
	}

	suffix := ""
	for _, f := range fields {
		if f.value != top {
			continue
		}
		if suffix != "" {
			return baseName + " " + balanceSuffix
		}
		suffix = f.suffix
	}
	return baseName + " " + suffix
}
