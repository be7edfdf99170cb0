package models

import "time"

// LearnedWord records that a word has been introduced to a chat and is
// eligible for repetition
type LearnedWord struct {
	ID              int64     `json:"id" db:"id"`
	ChatID          int64     `json:"chat_id" db:"chat_id"`
	WordID          int       `json:"word_id" db:"word_id"`
	LearnedAt       time.Time `json:"learned_at" db:"learned_at"`
	LastRepeatedAt  time.Time `json:"last_repeated_at" db:"last_repeated_at"`
	RepetitionCount int       `json:"repetition_count" db:"repetition_count"`
}
