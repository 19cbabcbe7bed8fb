package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID          int64  `json:"studentId" db:"id" example:"1"`                    // Unique identifier for the student record
	Name        string `json:"studentName" db:"student_name" example:"Alice"`    // Student's display name
	Email       string `json:"email" db:"email" example:"alice@example.com"`     // Contact email, unique at creation time
	Phone       string `json:"phone" db:"phone" example:"+90 555 000 0000"`      // Contact phone
	FirebaseUID string `json:"firebaseUid" db:"firebase_uid" example:"uid-1"`    // Identity provider subject id
	Role        string `json:"role" db:"role" example:"STUDENT"`                 // Free-form role string; "ADMIN" grants mutation rights
	CourseID    *int64 `json:"-" db:"course_id"`                                 // Optional course assignment (nullable)

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"` // Assigned course, nil when unassigned
}
