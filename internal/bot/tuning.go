package bot

// Weights scores the features of a candidate move for SmartBot.
type Weights struct {
	Foundation      float64
	FoundationWaste float64 // extra for clearing the waste top
	Reveal          float64
	HiddenBelow     float64 // per face-down card left under the moved run
	EmptyPile       float64 // only counted when a king can use the gap
	WasteToTableau  float64
	Draw            float64
	KingShuffle     float64
	Shuffle         float64 // tableau to tableau with no visible gain
	MinScore        float64 // best score below this gives no hint
}

// DefaultWeights favours uncovering deep piles over early foundation play.
var DefaultWeights = Weights{
	Foundation:      40,
	FoundationWaste: 5,
	Reveal:          60,
	HiddenBelow:     4,
	EmptyPile:       20,
	WasteToTableau:  30,
	Draw:            1,
	KingShuffle:     -100,
	Shuffle:         -10,
	MinScore:        0,
}
