package models

// Course represents one entry in the course catalog
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Track       string   `json:"track"` // neet, jee, btech
	Description string   `json:"description"`
	Subjects    []string `json:"subjects"`
	Duration    string   `json:"duration"`
}

// Resource represents one downloadable/linked study resource
type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Semester int    `json:"semester"`
	Subject  string `json:"subject"`
	Kind     string `json:"kind"` // notes, question-bank, lab-manual
	URL      string `json:"url"`
}
