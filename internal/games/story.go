package games

// StoryOption is one reply the player can pick in a scene.
type StoryOption struct {
	Text     string
	Correct  bool
	Next     string // empty ends the story
	Feedback string
}

// StoryNode is one scene.
type StoryNode struct {
	ID        string
	Title     string
	Situation string
	Question  string
	Options   []StoryOption
}

// DefaultStory is the bundled "day at base" story.
var DefaultStory = []StoryNode{
	{
		ID:        "intro",
		Title:     "Morning at Base",
		Situation: "אתה מגיע לבסיס בבוקר. אתה רואה את המפקדת ליד השער. אתה קצת לחוץ מהעברית.",
		Question:  "מה אתה אומר לה?",
		Options: []StoryOption{
			{Text: "שלום, בוקר טוב המפקדת!", Correct: true, Next: "class", Feedback: "יפה! פתיחה מנומסת וביטחון."},
			{Text: "היי, מה קורה?", Next: "class", Feedback: "לא נורא, אבל פחות רשמי למפקדת."},
			{Text: "אני עייף.", Next: "class", Feedback: "אולי נכון, אבל לא הדבר הראשון שאומרים."},
		},
	},
	{
		ID:        "class",
		Title:     "In Hebrew Class",
		Situation: "אתה בכיתה עברית. המדריכה שואלת שאלה על המילה 'בסיס' ואתה לא בטוח אם הבנת.",
		Question:  "איך אתה מבקש הסבר נוסף?",
		Options: []StoryOption{
			{Text: "אפשר להסביר שוב, בבקשה?", Correct: true, Next: "dining", Feedback: "מושלם – מנומס וברור."},
			{Text: "מה?! לא הבנתי כלום.", Next: "dining", Feedback: "פחות מכבד, אבל גם ביטוי של קושי."},
			{Text: "אני לא צריך הסבר.", Next: "dining", Feedback: "אולי עדיף לבקש עזרה 😊"},
		},
	},
	{
		ID:        "dining",
		Title:     "At the Dining Room",
		Situation: "אתה וחבר לוחם בתור לאוכל. הוא שואל אם אתה יכול להביא לו שתיה כי הוא מחזיק מגש.",
		Question:  "מה תגיד?",
		Options: []StoryOption{
			{Text: "לא, אין לי כוח.", Feedback: "אפשר, אבל לא הכי צוותי 😉"},
			{Text: "ברור, מה אתה רוצה לשתות?", Correct: true, Feedback: "יפה! גם עוזר וגם שואל שאלה בעברית."},
			{Text: "אני צריך ללכת עכשיו.", Feedback: "לפעמים נכון, אבל כאן עדיף לעזור."},
		},
	},
}

// Story walks a branching set of scenes, scoring polite replies.
type Story struct {
	nodes    map[string]StoryNode
	start    string
	total    int
	current  string
	score    int
	steps    int
	finished bool
}

// NewStory returns a story starting at the first node.
func NewStory(nodes []StoryNode) *Story {
	s := &Story{nodes: make(map[string]StoryNode, len(nodes)), total: len(nodes)}
	for _, n := range nodes {
		s.nodes[n.ID] = n
	}
	if len(nodes) > 0 {
		s.start = nodes[0].ID
	}
	s.Reset()
	return s
}

// Reset returns to the first scene.
func (s *Story) Reset() {
	s.current = s.start
	s.score, s.steps = 0, 0
	s.finished = s.start == ""
}

// Current returns the active scene.
func (s *Story) Current() (StoryNode, bool) {
	if s.finished {
		return StoryNode{}, false
	}
	n, ok := s.nodes[s.current]
	return n, ok
}

// Score returns the number of correct replies.
func (s *Story) Score() int { return s.score }

// Total returns the number of scenes.
func (s *Story) Total() int { return s.total }

// Steps returns the number of replies made.
func (s *Story) Steps() int { return s.steps }

// Finished reports whether the story has ended.
func (s *Story) Finished() bool { return s.finished }

// Choose picks option i in the current scene and returns it. The story
// ends when the option has no next scene or the next scene is unknown.
func (s *Story) Choose(i int) (StoryOption, error) {
	n, ok := s.Current()
	if !ok {
		return StoryOption{}, ErrGameOver
	}
	if i < 0 || i >= len(n.Options) {
		return StoryOption{}, ErrInvalidOption
	}
	opt := n.Options[i]
	s.steps++
	if opt.Correct {
		s.score++
	}
	if _, ok := s.nodes[opt.Next]; opt.Next == "" || !ok {
		s.finished = true
	} else {
		s.current = opt.Next
	}
	return opt, nil
}
