package model

// Exam is an exam entry pushed by the host page. The worker never edits it.
type Exam struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Start   string `json:"start"`
}

// ScheduleMessage is the page-to-worker message carrying scheduling state.
type ScheduleMessage struct {
	Type    string   `json:"type"`
	Exams   []Exam   `json:"exams"`
	Lang    string   `json:"lang"`
	Palette []string `json:"palette"`
}
