package config

type Config struct {
	Profiles []Profile `json:"profiles"`
}

// Profile tunes the emotion stabilizer for one deployment: per-label
// sensitivity factors and the temporal smoothing window.
type Profile struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	SmoothWindow int                `json:"smooth_window"`
	Weights      map[string]float64 `json:"weights"`
}
