package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const DefaultTargetReps = 12

// Weights applied per rep quality when deriving AccuracyScore.
const (
	excellentRepWeight = 100.0
	goodRepWeight      = 75.0
	partialRepWeight   = 50.0
)

type ExerciseSession struct {
	ID            uint       `gorm:"primaryKey" json:"id" example:"1"`
	PatientID     uint       `gorm:"not null;index" json:"patient_id" example:"1"`
	ExerciseType  string     `gorm:"size:50;not null" json:"exercise_type" example:"side-lateral-raise"`
	StartTime     time.Time  `gorm:"index" json:"start_time" example:"2023-01-01T10:00:00Z"`
	EndTime       *time.Time `json:"end_time" example:"2023-01-01T10:15:00Z"`
	TargetReps    int        `gorm:"not null;default:12" json:"target_reps" example:"12"`
	CompletedReps int        `gorm:"not null;default:0" json:"completed_reps" example:"10"`
	ExcellentReps int        `gorm:"not null;default:0" json:"excellent_reps" example:"6"`
	GoodReps      int        `gorm:"not null;default:0" json:"good_reps" example:"3"`
	PartialReps   int        `gorm:"not null;default:0" json:"partial_reps" example:"1"`
	AccuracyScore float64    `gorm:"not null;default:0;check:accuracy_score >= 0 AND accuracy_score <= 100" json:"accuracy_score" example:"87.5"`
	Notes         *string    `gorm:"type:text" json:"notes"`
}

// ExerciseSessionOrder is the default listing order for sessions.
const ExerciseSessionOrder = "start_time DESC"

func (s *ExerciseSession) TableName() string {
	return "exercise_sessions"
}

func (s *ExerciseSession) IsFinished() bool {
	return s.EndTime != nil
}

// ComputeAccuracy returns the quality-weighted share of completed reps as a
// percentage rounded to one decimal.
func (s *ExerciseSession) ComputeAccuracy() float64 {
	if s.CompletedReps <= 0 {
		return 0
	}
	weighted := float64(s.ExcellentReps)*excellentRepWeight +
		float64(s.GoodReps)*goodRepWeight +
		float64(s.PartialReps)*partialRepWeight
	score := weighted / float64(s.CompletedReps)
	score = math.Round(score*10) / 10
	return math.Max(0, math.Min(100, score))
}

func (s *ExerciseSession) BeforeCreate(tx *gorm.DB) error {
	if s.StartTime.IsZero() {
		s.StartTime = time.Now()
	}
	if s.TargetReps <= 0 {
		s.TargetReps = DefaultTargetReps
	}
	return nil
}

func (s *ExerciseSession) BeforeSave(tx *gorm.DB) error {
	s.AccuracyScore = s.ComputeAccuracy()
	return nil
}
