package models

// Submission payload shapes per question type. Submissions arrive as raw
// JSON and are graded fail-soft, so these structs document the expected
// shapes and build payloads on the client/test side rather than gate
// decoding.

type MultipleChoiceResponse struct {
	SelectedOptions []int `json:"selected_options"` // component positions
	TimeSpent       int   `json:"time_spent"`
}

type ClozeResponse struct {
	Answers   map[string]string `json:"answers"` // blank position (as string) -> submitted text
	TimeSpent int               `json:"time_spent"`
}

type MatchPair struct {
	Left  string `json:"left"`  // left component position, as string
	Right string `json:"right"` // right component position, as string
}

type WordMatchResponse struct {
	Pairs     []MatchPair `json:"pairs"`
	TimeSpent int         `json:"time_spent"`
}
