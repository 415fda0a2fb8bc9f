package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Chat message senders.
const (
	SenderPatient = "patient"
	SenderAI      = "ai"
)

// Supported chat languages.
const (
	LanguageEnglish = "english"
	LanguageHindi   = "hindi"
)

// SeriousThreshold is the seriousness score above which a message is
// escalated to the patient's doctor.
const SeriousThreshold = 0.7

type ChatMessage struct {
	ID               uint      `gorm:"primaryKey" json:"id" example:"1"`
	PatientID        uint      `gorm:"not null;index" json:"patient_id" example:"1"`
	Sender           string    `gorm:"size:10;not null;check:sender IN ('patient','ai')" json:"sender" example:"patient"`
	Message          string    `gorm:"type:text;not null" json:"message" example:"My knee hurts after the exercise."`
	Language         string    `gorm:"size:10;not null;default:'english'" json:"language" example:"english"`
	SeriousnessScore float64   `gorm:"not null;default:0;check:seriousness_score >= 0 AND seriousness_score <= 1" json:"seriousness_score" example:"0.2"`
	Timestamp        time.Time `gorm:"index" json:"timestamp" example:"2023-01-01T10:00:00Z"`
}

// ChatMessageOrder is the default listing order for chat history.
const ChatMessageOrder = `"timestamp" ASC, id ASC`

func (m *ChatMessage) TableName() string {
	return "chat_messages"
}

func (m *ChatMessage) IsSerious() bool {
	return m.SeriousnessScore > SeriousThreshold
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if !IsValidSender(m.Sender) {
		return fmt.Errorf("invalid chat sender %q", m.Sender)
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	if m.Language == "" {
		m.Language = LanguageEnglish
	}
	return nil
}

func IsValidSender(sender string) bool {
	return sender == SenderPatient || sender == SenderAI
}

func IsValidLanguage(language string) bool {
	return language == LanguageEnglish || language == LanguageHindi
}
