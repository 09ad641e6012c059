// Package catalog holds the static reference data the badge engine consumes:
// the exercise catalog and the badge definitions. Both ship embedded in the
// binary; nothing here is user data.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/meltforce/liftmarks/internal/badges"
	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var exercisesYAML []byte

//go:embed badges.yaml
var badgesYAML []byte

// Exercise is one entry of the exercise catalog.
type Exercise struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Target    string `yaml:"target" json:"target"`
	Equipment string `yaml:"equipment" json:"equipment"`
}

// Catalog is the loaded reference data.
type Catalog struct {
	exercises map[string]Exercise
	byName    map[string]string
	badgeDefs []badges.Badge
}

// Compile-time check: the catalog serves as the engine's exercise lookup.
var _ badges.ExerciseLookup = (*Catalog)(nil)

// Load parses the embedded catalogs and validates them: ids must be unique
// and every badge's condition type must be known to the engine.
func Load() (*Catalog, error) {
	var exFile struct {
		Exercises []Exercise `yaml:"exercises"`
	}
	if err := yaml.Unmarshal(exercisesYAML, &exFile); err != nil {
		return nil, fmt.Errorf("parsing exercise catalog: %w", err)
	}

	var badgeFile struct {
		Badges []badges.Badge `yaml:"badges"`
	}
	if err := yaml.Unmarshal(badgesYAML, &badgeFile); err != nil {
		return nil, fmt.Errorf("parsing badge catalog: %w", err)
	}

	c := &Catalog{
		exercises: make(map[string]Exercise, len(exFile.Exercises)),
		byName:    make(map[string]string, len(exFile.Exercises)),
		badgeDefs: badgeFile.Badges,
	}

	for _, ex := range exFile.Exercises {
		if _, dup := c.exercises[ex.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		c.exercises[ex.ID] = ex
		c.byName[normalizeName(ex.Name)] = ex.ID
	}

	seen := make(map[string]bool, len(badgeFile.Badges))
	for _, b := range badgeFile.Badges {
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate badge id %q", b.ID)
		}
		seen[b.ID] = true
		if !badges.IsKnownCondition(b.ConditionType) {
			return nil, fmt.Errorf("badge %q has unknown condition type %q", b.ID, b.ConditionType)
		}
	}

	return c, nil
}

// Exercise resolves an exercise id for the badge engine.
func (c *Catalog) Exercise(id string) (badges.ExerciseInfo, bool) {
	ex, ok := c.exercises[id]
	if !ok {
		return badges.ExerciseInfo{}, false
	}
	return badges.ExerciseInfo{Target: ex.Target, Equipment: ex.Equipment}, true
}

// ExerciseByName maps a display name (as it appears in CSV exports) to an
// exercise id. Matching is case- and whitespace-insensitive.
func (c *Catalog) ExerciseByName(name string) (string, bool) {
	id, ok := c.byName[normalizeName(name)]
	return id, ok
}

// Badges returns the badge definitions in catalog order.
func (c *Catalog) Badges() []badges.Badge { return c.badgeDefs }

// Exercises returns every catalog entry keyed by id.
func (c *Catalog) Exercises() map[string]Exercise { return c.exercises }

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
