package devserver

// Quiz is the document served from the protected exam route.
type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

func DefaultQuiz() Quiz {
	return Quiz{
		Title: "Android fundamentals",
		Questions: []Question{
			{
				ID:      1,
				Text:    "Which component hosts a single screen of an app?",
				Options: []string{"Service", "Activity", "BroadcastReceiver", "ContentProvider"},
				Answer:  1,
			},
			{
				ID:      2,
				Text:    "Which file declares an app's components and permissions?",
				Options: []string{"build.gradle", "strings.xml", "AndroidManifest.xml", "proguard-rules.pro"},
				Answer:  2,
			},
			{
				ID:      3,
				Text:    "What does a 401 response to an API request usually mean?",
				Options: []string{"Server error", "Not found", "Missing or expired credentials", "Rate limited"},
				Answer:  2,
			},
		},
	}
}
