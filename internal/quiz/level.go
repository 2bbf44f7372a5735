package quiz

// Level is a coarse placement suggestion.
type Level int

const (
	Beginner Level = iota
	Intermediate
	Advanced
)

// Tier cutovers, in percent correct. Each bound belongs to the higher tier.
const (
	IntermediateThreshold = 40
	AdvancedThreshold     = 70
)

// SuggestLevel classifies a result by percentage correct. A non-positive
// total suggests Beginner.
func SuggestLevel(correct, total int) Level {
	if total <= 0 {
		return Beginner
	}
	// Compare correct/total against p/100 without rounding.
	switch {
	case correct*100 >= AdvancedThreshold*total:
		return Advanced
	case correct*100 >= IntermediateThreshold*total:
		return Intermediate
	default:
		return Beginner
	}
}

func (l Level) String() string {
	switch l {
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	default:
		return "beginner"
	}
}

// Name returns the display name used on result screens.
func (l Level) Name() string {
	switch l {
	case Intermediate:
		return "Bet (Intermediate)"
	case Advanced:
		return "Gimel (Advanced)"
	default:
		return "Alef (Beginner)"
	}
}

// Advice returns a short study recommendation for the level.
func (l Level) Advice() string {
	switch l {
	case Intermediate:
		return "יש בסיס טוב. אפשר לעבוד על דיוק במשפטים, הרחבת אוצר מילים וטקסטים קצת יותר ארוכים."
	case Advanced:
		return "רמה גבוהה. אפשר להתמקד בשפה צבאית, טקסטים ארוכים ודיוק גבוה בדיבור וכתיבה."
	default:
		return "הבסיס עדיין נבנה. כדי להתחזק – הרבה חזרה על מילים פשוטות, קריאה קצרה ודיבור יומיומי."
	}
}
