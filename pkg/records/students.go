package records

import (
	"errors"
	"fmt"
	"slices"
)

var (
	MaritalStatuses   = []string{"Single", "Married", "Divorced", "Widowed"}
	EducationStatuses = []string{"Undergraduate", "Graduate", "Doctoral"}
)

func (s *Student) Validate() error {
	if s.FirstName == "" || s.LastName == "" {
		return errors.New("first and last name are required")
	}
	if s.Age <= 0 {
		return fmt.Errorf("invalid age %d", s.Age)
	}
	if s.Major == "" {
		return errors.New("major is required")
	}
	if s.GPA < 0 || s.GPA > 4 {
		return fmt.Errorf("gpa %.2f out of range 0..4", s.GPA)
	}
	if !slices.Contains(MaritalStatuses, s.MaritalStatus) {
		return fmt.Errorf("unknown marital status %q", s.MaritalStatus)
	}
	if !slices.Contains(EducationStatuses, s.EducationStatus) {
		return fmt.Errorf("unknown education status %q", s.EducationStatus)
	}
	return nil
}

// ReferenceStudents returns a fresh copy of the seed dataset.
func ReferenceStudents() []Student {
	return slices.Clone(referenceStudents)
}

var referenceStudents = []Student{
	{FirstName: "John", LastName: "Doe", Age: 20, Major: "Computer Science", GPA: 3.5, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
	{FirstName: "Jane", LastName: "Smith", Age: 22, Major: "Mathematics", GPA: 3.8, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
	{FirstName: "Michael", LastName: "Johnson", Age: 25, Major: "Physics", GPA: 3.2, MaritalStatus: "Married", EducationStatus: "Graduate"},
	{FirstName: "Emily", LastName: "Brown", Age: 21, Major: "Biology", GPA: 3.9, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
	{FirstName: "David", LastName: "Wilson", Age: 28, Major: "Chemistry", GPA: 3.6, MaritalStatus: "Married", EducationStatus: "Doctoral"},
	{FirstName: "Sarah", LastName: "Davis", Age: 23, Major: "Psychology", GPA: 3.4, MaritalStatus: "Single", EducationStatus: "Graduate"},
	{FirstName: "James", LastName: "Miller", Age: 19, Major: "Economics", GPA: 2.9, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
	{FirstName: "Jessica", LastName: "Taylor", Age: 30, Major: "Computer Science", GPA: 3.7, MaritalStatus: "Divorced", EducationStatus: "Doctoral"},
	{FirstName: "Robert", LastName: "Anderson", Age: 24, Major: "Engineering", GPA: 3.1, MaritalStatus: "Married", EducationStatus: "Graduate"},
	{FirstName: "Ashley", LastName: "Thomas", Age: 20, Major: "History", GPA: 3.3, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
	{FirstName: "William", LastName: "Jackson", Age: 27, Major: "Mathematics", GPA: 3.95, MaritalStatus: "Married", EducationStatus: "Doctoral"},
	{FirstName: "Amanda", LastName: "White", Age: 22, Major: "Biology", GPA: 2.8, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
	{FirstName: "Daniel", LastName: "Harris", Age: 35, Major: "Philosophy", GPA: 3.0, MaritalStatus: "Widowed", EducationStatus: "Graduate"},
	{FirstName: "Olivia", LastName: "Martin", Age: 21, Major: "Engineering", GPA: 3.6, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
	{FirstName: "Matthew", LastName: "Thompson", Age: 26, Major: "Computer Science", GPA: 3.4, MaritalStatus: "Married", EducationStatus: "Graduate"},
	{FirstName: "Sophia", LastName: "Garcia", Age: 18, Major: "Economics", GPA: 3.2, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
	{FirstName: "Christopher", LastName: "Martinez", Age: 31, Major: "Physics", GPA: 3.85, MaritalStatus: "Divorced", EducationStatus: "Doctoral"},
	{FirstName: "Isabella", LastName: "Robinson", Age: 23, Major: "Psychology", GPA: 2.7, MaritalStatus: "Married", EducationStatus: "Undergraduate"},
	{FirstName: "Andrew", LastName: "Clark", Age: 29, Major: "Chemistry", GPA: 3.3, MaritalStatus: "Single", EducationStatus: "Graduate"},
	{FirstName: "Mia", LastName: "Rodriguez", Age: 20, Major: "History", GPA: 3.75, MaritalStatus: "Single", EducationStatus: "Undergraduate"},
}
