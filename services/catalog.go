package services

import (
	"fmt"

	"exam-prep-portal/models"
)

// The catalog and resource list are static site content, kept in memory.

var courses = []models.Course{
	{
		ID:          "neet-foundation",
		Title:       "NEET Foundation",
		Track:       "neet",
		Description: "Complete preparation for the medical entrance exam covering the full NCERT syllabus.",
		Subjects:    []string{"Physics", "Chemistry", "Biology"},
		Duration:    "12 months",
	},
	{
		ID:          "jee-main-advanced",
		Title:       "JEE Main + Advanced",
		Track:       "jee",
		Description: "Engineering entrance preparation with problem-solving drills and weekly mock tests.",
		Subjects:    []string{"Physics", "Chemistry", "Mathematics"},
		Duration:    "12 months",
	},
	{
		ID:          "btech-first-year",
		Title:       "B.Tech First Year Essentials",
		Track:       "btech",
		Description: "Core first-year engineering subjects with semester-wise notes and lab manuals.",
		Subjects:    []string{"Engineering Mathematics", "Programming in C", "Engineering Physics", "Basic Electrical"},
		Duration:    "2 semesters",
	},
}

var btechResources = []models.Resource{
	{ID: "btr-1", Title: "Engineering Mathematics I - Unit Notes", Semester: 1, Subject: "Mathematics", Kind: "notes", URL: "/static/resources/maths-1-notes.pdf"},
	{ID: "btr-2", Title: "Programming in C - Question Bank", Semester: 1, Subject: "Programming", Kind: "question-bank", URL: "/static/resources/c-question-bank.pdf"},
	{ID: "btr-3", Title: "Engineering Physics - Lab Manual", Semester: 1, Subject: "Physics", Kind: "lab-manual", URL: "/static/resources/physics-lab-manual.pdf"},
	{ID: "btr-4", Title: "Data Structures - Unit Notes", Semester: 2, Subject: "Programming", Kind: "notes", URL: "/static/resources/ds-notes.pdf"},
	{ID: "btr-5", Title: "Basic Electrical - Question Bank", Semester: 2, Subject: "Electrical", Kind: "question-bank", URL: "/static/resources/electrical-question-bank.pdf"},
}

// GetAllCourses returns the course catalog
func GetAllCourses() []models.Course {
	out := make([]models.Course, len(courses))
	copy(out, courses)
	return out
}

// GetCourseByID returns one catalog entry by its ID
func GetCourseByID(id string) (*models.Course, error) {
	for i := range courses {
		if courses[i].ID == id {
			course := courses[i]
			return &course, nil
		}
	}
	return nil, fmt.Errorf("course not found: %s", id)
}

// GetBTechResources returns the semester-wise resource list, optionally
// filtered by semester (0 means all)
func GetBTechResources(semester int) []models.Resource {
	if semester == 0 {
		out := make([]models.Resource, len(btechResources))
		copy(out, btechResources)
		return out
	}
	var out []models.Resource
	for _, r := range btechResources {
		if r.Semester == semester {
			out = append(out, r)
		}
	}
	return out
}
