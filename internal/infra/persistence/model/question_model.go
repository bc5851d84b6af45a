package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionModel mirrors the 'questions' table.
type QuestionModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Category  string         `gorm:"type:varchar(100);not null;index"`
	Prompt    string         `gorm:"type:text;not null"`
	Answers   []*AnswerModel `gorm:"foreignKey:QuestionID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (QuestionModel) TableName() string {
	return "questions"
}

// AnswerModel mirrors the 'question_answers' table. Position preserves the
// order answers were submitted in.
type AnswerModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	Answer     string    `gorm:"type:text;not null"`
	TrueAnswer bool      `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AnswerModel) TableName() string {
	return "question_answers"
}
