package model

// Student is a scored student record. The ID is assigned by the caller.
type Student struct {
	ID     int     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name   string  `json:"name" gorm:"size:255;not null"`
	Scores []Score `json:"scores" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// Score is one subject result. Rows keep insertion order through ID.
type Score struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	StudentID int     `json:"-" gorm:"not null;index"`
	Subject   string  `json:"subject" gorm:"size:255;not null"`
	Score     float64 `json:"score" gorm:"not null"`
}

// StudentPatch is a partial update. Nil fields are left unchanged; a
// non-nil Scores replaces the whole list.
type StudentPatch struct {
	Name   *string
	Scores []Score
}
