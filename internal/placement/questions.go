package placement

import "github.com/lashon-study/lashon/internal/quiz"

var sentenceQuestions = []quiz.Question{
	{
		ID:     "sent-1",
		Prompt: "בחרו את המשפט העברי הנכון:",
		Options: []string{
			"אני הולך בית הספר כל יום.",
			"אני הולך לבית הספר כל יום.",
			"אני הולך לבית הספר כל יום אתמול.",
			"אני בית הספר הולך כל יום.",
		},
		CorrectAnswer: "אני הולך לבית הספר כל יום.",
	},
	{
		ID:     "sent-2",
		Prompt: "בחרו את המשפט שהזמן בו מתאים להיום:",
		Options: []string{
			"אני אלך לקורס מחר.",
			"אני הלכתי לקורס אתמול.",
			"אני הולך לקורס היום.",
			"אני הולך לקורס לפני שנה.",
		},
		CorrectAnswer: "אני הולך לקורס היום.",
	},
	{
		ID:     "sent-3",
		Prompt: "איזה משפט מנומס יותר למפקד?",
		Options: []string{
			"אני לא בא.",
			"אני לא יכול לבוא, סליחה.",
			"אין מצב שאני בא.",
			"לא רוצה לבוא.",
		},
		CorrectAnswer: "אני לא יכול לבוא, סליחה.",
	},
}

var readingQuestions = []quiz.Question{
	{
		ID:     "read-1",
		Prompt: "מה הרעיון המרכזי של הקטע?",
		Passage: "הקורס העברי החדש במתפ\"ש נבנה במיוחד לחיילים ממדינות שונות. " +
			"במהלך השבוע הם לומדים מילים חדשות, קוראים טקסטים קצרים ומדברים אחד עם השני בעברית. " +
			"המטרה היא לעזור לכל חייל להרגיש יותר בטוח בשיחה עם מפקדים וחברים ביחידה.",
		Options: []string{
			"החייל לא רוצה ללמוד.",
			"החייל צריך ללמוד לבד בבית.",
			"הקורס עוזר לחייל להשתפר בעברית.",
			"המפקדת לא מרשה ללמוד בזמן הקורס.",
		},
		CorrectAnswer: "הקורס עוזר לחייל להשתפר בעברית.",
	},
}
