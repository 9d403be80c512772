package model

type NotificationData struct {
	ExamTitle string `json:"examTitle"`
	Subject   string `json:"subject"`
	DiffDays  int    `json:"diffDays"`
}

// Notification is a local exam reminder as shown by the page.
type Notification struct {
	Title string           `json:"title"`
	Body  string           `json:"body"`
	Icon  string           `json:"icon"`
	Tag   string           `json:"tag"`
	Data  NotificationData `json:"data"`
}
