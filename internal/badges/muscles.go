package badges

import "strings"

// Canonical muscle keys. Per-muscle stats are always keyed by these; free-text
// exercise targets are resolved through ResolveTarget before aggregation.
const (
	MuscleChest      = "chest"
	MuscleLats       = "lats"
	MuscleTraps      = "traps"
	MuscleLowerBack  = "lower_back"
	MuscleFrontDelts = "front_delts"
	MuscleSideDelts  = "side_delts"
	MuscleRearDelts  = "rear_delts"
	MuscleBiceps     = "biceps"
	MuscleTriceps    = "triceps"
	MuscleForearms   = "forearms"
	MuscleAbs        = "abs"
	MuscleQuads      = "quads"
	MuscleHamstrings = "hamstrings"
	MuscleGlutes     = "glutes"
	MuscleCalves     = "calves"
)

// composites maps aggregate muscle keys (usable in badge conditions) to the
// canonical keys they sum over.
var composites = map[string][]string{
	"back":      {MuscleLats, MuscleTraps, MuscleLowerBack},
	"shoulders": {MuscleFrontDelts, MuscleSideDelts, MuscleRearDelts},
	"arms":      {MuscleBiceps, MuscleTriceps, MuscleForearms},
	"legs":      {MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves},
}

// targetAliases maps normalized exercise target strings to canonical keys.
// Exercise catalogs are hand-curated, so the alias list is deliberately
// generous about synonyms.
var targetAliases = map[string]string{
	"chest":             MuscleChest,
	"pecs":              MuscleChest,
	"pectorals":         MuscleChest,
	"lats":              MuscleLats,
	"latissimus":        MuscleLats,
	"latissimus dorsi":  MuscleLats,
	"upper back":        MuscleTraps,
	"traps":             MuscleTraps,
	"trapezius":         MuscleTraps,
	"lower back":        MuscleLowerBack,
	"erectors":          MuscleLowerBack,
	"spinal erectors":   MuscleLowerBack,
	"front delts":       MuscleFrontDelts,
	"anterior deltoid":  MuscleFrontDelts,
	"side delts":        MuscleSideDelts,
	"lateral deltoid":   MuscleSideDelts,
	"rear delts":        MuscleRearDelts,
	"posterior deltoid": MuscleRearDelts,
	"biceps":            MuscleBiceps,
	"triceps":           MuscleTriceps,
	"forearms":          MuscleForearms,
	"grip":              MuscleForearms,
	"abs":               MuscleAbs,
	"core":              MuscleAbs,
	"abdominals":        MuscleAbs,
	"quads":             MuscleQuads,
	"quadriceps":        MuscleQuads,
	"hamstrings":        MuscleHamstrings,
	"glutes":            MuscleGlutes,
	"gluteus":           MuscleGlutes,
	"calves":            MuscleCalves,
}

// ResolveTarget maps an exercise's free-text target-muscle string to a
// canonical muscle key. Unmapped targets return ok=false; callers exclude
// those exercises from muscle-scoped stats rather than erroring.
func ResolveTarget(target string) (string, bool) {
	key, ok := targetAliases[strings.ToLower(strings.TrimSpace(target))]
	return key, ok
}

// ExpandMuscle resolves a condition's muscle key into the canonical keys it
// covers: composite keys expand to their sub-keys, canonical keys map to
// themselves, and anything unrecognized returns nil.
func ExpandMuscle(key string) []string {
	if subs, ok := composites[key]; ok {
		return subs
	}
	if _, ok := landmarks[key]; ok {
		return []string{key}
	}
	return nil
}

// MuscleLabel returns a display label for any muscle key, including keys not
// present in the static tables: unknown keys fall back to a title-cased form
// of the key itself.
func MuscleLabel(key string) string {
	if label, ok := muscleLabels[key]; ok {
		return label
	}
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

var muscleLabels = map[string]string{
	MuscleChest:      "Chest",
	MuscleLats:       "Lats",
	MuscleTraps:      "Upper Back",
	MuscleLowerBack:  "Lower Back",
	MuscleFrontDelts: "Front Delts",
	MuscleSideDelts:  "Side Delts",
	MuscleRearDelts:  "Rear Delts",
	MuscleBiceps:     "Biceps",
	MuscleTriceps:    "Triceps",
	MuscleForearms:   "Forearms",
	MuscleAbs:        "Abs",
	MuscleQuads:      "Quads",
	MuscleHamstrings: "Hamstrings",
	MuscleGlutes:     "Glutes",
	MuscleCalves:     "Calves",
	"back":           "Back",
	"shoulders":      "Shoulders",
	"arms":           "Arms",
	"legs":           "Legs",
}
