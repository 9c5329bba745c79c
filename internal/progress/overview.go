package progress

// DailyPoint is one day in the per-day adherence series.
type DailyPoint struct {
	DateKey        string  `json:"dateKey"`
	Label          string  `json:"label"`
	Adherence      float64 `json:"adherence"`
	VolumeRatio    float64 `json:"volumeRatio"`
	IntensityRatio float64 `json:"intensityRatio"`
}

// WeeklyBar is one calendar week in the weekly series. Completion is a
// pooled ratio over the exercises of the week, not a mean of day ratios.
type WeeklyBar struct {
	Label      string  `json:"label"`
	VolumeBar  float64 `json:"volumeBar"`
	Completion float64 `json:"completion"`
}

// SessionTiles tallies done vs missed days over the whole history.
type SessionTiles struct {
	Done   int `json:"done"`
	Missed int `json:"missed"`
}

// Overview is the full analytics surface of a plan. It is recomputed from
// scratch on every request, never persisted.
type Overview struct {
	Daily              []DailyPoint `json:"daily"`
	Weekly             []WeeklyBar  `json:"weekly"`
	Tiles              SessionTiles `json:"tiles"`
	BestStreakDays     int          `json:"bestStreakDays"`
	ThisWeekCompletion float64      `json:"thisWeekCompletion"`
	TotalCompleted     int          `json:"totalCompleted"`
	TotalExercises     int          `json:"totalExercises"`
}
