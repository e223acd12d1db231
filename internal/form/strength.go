package form

// Rating is the display classification of a strength score.
type Rating struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var (
	RatingWeak   = Rating{Label: "Weak", Color: "#ef4444"}
	RatingFair   = Rating{Label: "Fair", Color: "#f59e0b"}
	RatingGood   = Rating{Label: "Good", Color: "#10b981"}
	RatingStrong = Rating{Label: "Strong", Color: "#059669"}
)

// Classify maps any integer score to a rating.
func Classify(strength int) Rating {
	switch {
	case strength <= 2:
		return RatingWeak
	case strength <= 3:
		return RatingFair
	case strength <= 4:
		return RatingGood
	default:
		return RatingStrong
	}
}
