package badges

// Landmark holds the four ascending weekly-set thresholds for one muscle:
// Minimum Volume, Minimum Effective Volume, Maximum Adaptive Volume (lower
// bound) and Maximum Recoverable Volume.
type Landmark struct {
	MV  int `json:"mv"`
	MEV int `json:"mev"`
	MAV int `json:"mav"`
	MRV int `json:"mrv"`
}

// Zone is the ordinal volume band a muscle's weekly set count falls into.
type Zone int

const (
	ZoneBelowMV     Zone = iota // below MV: detraining
	ZoneMaintenance             // MV to MEV
	ZoneOptimal                 // MEV to MAV
	ZoneHigh                    // MAV to MRV
	ZoneExcess                  // above MRV
)

func (z Zone) String() string {
	switch z {
	case ZoneBelowMV:
		return "below_mv"
	case ZoneMaintenance:
		return "maintenance"
	case ZoneOptimal:
		return "optimal"
	case ZoneHigh:
		return "high"
	default:
		return "excess"
	}
}

// landmarks is the static volume-landmark table. Values are weekly completed
// sets, following the common hypertrophy-literature ranges. Composite keys
// carry their own rows since their recoverable volume is not the plain sum of
// the sub-regions'.
var landmarks = map[string]Landmark{
	MuscleChest:      {MV: 4, MEV: 6, MAV: 12, MRV: 22},
	MuscleLats:       {MV: 4, MEV: 8, MAV: 14, MRV: 25},
	MuscleTraps:      {MV: 0, MEV: 4, MAV: 10, MRV: 20},
	MuscleLowerBack:  {MV: 0, MEV: 2, MAV: 6, MRV: 12},
	MuscleFrontDelts: {MV: 0, MEV: 2, MAV: 8, MRV: 14},
	MuscleSideDelts:  {MV: 4, MEV: 8, MAV: 16, MRV: 26},
	MuscleRearDelts:  {MV: 0, MEV: 4, MAV: 12, MRV: 22},
	MuscleBiceps:     {MV: 4, MEV: 8, MAV: 14, MRV: 26},
	MuscleTriceps:    {MV: 4, MEV: 6, MAV: 12, MRV: 18},
	MuscleForearms:   {MV: 0, MEV: 2, MAV: 8, MRV: 16},
	MuscleAbs:        {MV: 0, MEV: 4, MAV: 16, MRV: 25},
	MuscleQuads:      {MV: 6, MEV: 8, MAV: 14, MRV: 20},
	MuscleHamstrings: {MV: 3, MEV: 4, MAV: 10, MRV: 16},
	MuscleGlutes:     {MV: 0, MEV: 2, MAV: 8, MRV: 16},
	MuscleCalves:     {MV: 4, MEV: 8, MAV: 14, MRV: 20},
	"back":           {MV: 6, MEV: 10, MAV: 18, MRV: 30},
	"shoulders":      {MV: 4, MEV: 8, MAV: 18, MRV: 28},
	"arms":           {MV: 6, MEV: 10, MAV: 18, MRV: 30},
	"legs":           {MV: 8, MEV: 12, MAV: 22, MRV: 34},
}

// LookupLandmark returns the landmark row for a muscle key.
func LookupLandmark(key string) (Landmark, bool) {
	lm, ok := landmarks[key]
	return lm, ok
}

// ClassifyZone places a weekly set count into one of the five landmark zones.
func ClassifyZone(sets int, lm Landmark) Zone {
	switch {
	case sets < lm.MV:
		return ZoneBelowMV
	case sets < lm.MEV:
		return ZoneMaintenance
	case sets < lm.MAV:
		return ZoneOptimal
	case sets <= lm.MRV:
		return ZoneHigh
	default:
		return ZoneExcess
	}
}
