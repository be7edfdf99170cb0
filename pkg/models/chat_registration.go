package models

import "time"

// ChatRegistration holds the learning schedule for a single chat
type ChatRegistration struct {
	ID                   int64     `json:"id" db:"id"`
	ChatID               int64     `json:"chat_id" db:"chat_id"`
	ChatTitle            string    `json:"chat_title" db:"chat_title"`
	IsActive             bool      `json:"is_active" db:"is_active"`
	RepetitionTime       string    `json:"repetition_time" db:"repetition_time"` // HH:MM, local clock
	NewWordsTime         string    `json:"new_words_time" db:"new_words_time"`   // HH:MM, local clock
	NewWordsCount        int       `json:"new_words_count" db:"new_words_count"` // 0 means process-wide default
	RepetitionWordsCount int       `json:"repetition_words_count" db:"repetition_words_count"`
	RegisteredAt         time.Time `json:"registered_at" db:"registered_at"`
}
