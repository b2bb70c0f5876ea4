package emotion

import (
	"fmt"
	"image/color"
)

// Overlay palette, carried over from the original BGR tuples of the on-screen
// overlay. Unrecognized labels fall back to gray.
var colors = map[Label]color.RGBA{
	Happy:    {R: 255, G: 255, B: 0},
	Sad:      {R: 0, G: 128, B: 255},
	Angry:    {R: 255, G: 0, B: 0},
	Surprise: {R: 0, G: 255, B: 255},
	Fear:     {R: 255, G: 0, B: 255},
	Disgust:  {R: 0, G: 255, B: 0},
	Neutral:  {R: 255, G: 255, B: 255},
	Unknown:  {R: 128, G: 128, B: 128},
}

var glyphs = map[Label]string{
	Happy:    "😄",
	Sad:      "😢",
	Angry:    "😡",
	Surprise: "😮",
	Fear:     "😨",
	Disgust:  "🤢",
	Neutral:  "😐",
	Unknown:  "❓",
}

var displayNames = map[Label]string{
	Happy:    "Happy",
	Sad:      "Sad",
	Angry:    "Angry",
	Surprise: "Surprised",
	Fear:     "Afraid",
	Disgust:  "Disgusted",
	Neutral:  "Neutral",
}

func Color(label Label) color.RGBA {
	if c, ok := colors[label]; ok {
		return c
	}
	return colors[Unknown]
}

func Glyph(label Label) string {
	if g, ok := glyphs[label]; ok {
		return g
	}
	return glyphs[Unknown]
}

// Describe renders a human-readable line for the overlay, with the
// confidence as a percentage.
func Describe(label Label, confidence float64) string {
	name, ok := displayNames[label]
	if !ok {
		return "Unable to determine emotion"
	}
	return fmt.Sprintf("%s (%.0f%% confidence)", name, confidence*100)
}
