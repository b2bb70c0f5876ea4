// Package emotion turns raw per-frame classifier output into a stable,
// human-presentable emotion label and confidence.
package emotion

type Label string

const (
	Angry    Label = "angry"
	Disgust  Label = "disgust"
	Fear     Label = "fear"
	Happy    Label = "happy"
	Sad      Label = "sad"
	Surprise Label = "surprise"
	Neutral  Label = "neutral"

	// Unknown is a display-only sentinel; the classifier never produces it.
	Unknown Label = "unknown"
)

// Labels is the canonical ordering of the closed label set. Every max scan
// walks this slice so score ties resolve to the first label encountered,
// deterministically.
var Labels = []Label{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral}

// DefaultWeights returns the built-in sensitivity factors: negative-valence
// emotions are boosted so subtle expressions are not drowned out by the
// classifier's bias toward happy and neutral.
func DefaultWeights() map[Label]float64 {
	return map[Label]float64{
		Sad:      1.2,
		Disgust:  1.2,
		Angry:    1.1,
		Fear:     1.1,
		Happy:    0.9,
		Neutral:  0.8,
		Surprise: 1.0,
	}
}
