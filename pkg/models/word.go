package models

import "time"

// Word represents a vocabulary entry shared read-only by all chats
type Word struct {
	ID            int       `json:"id" db:"id"`
	TargetWord    string    `json:"target_word" db:"target_word"`
	SourceMeaning string    `json:"source_meaning" db:"source_meaning"`
	Phonetic      string    `json:"phonetic" db:"phonetic"`
	FrequencyRank int       `json:"frequency_rank" db:"frequency_rank"` // Lower rank = more frequent word
	ImportedAt    time.Time `json:"imported_at" db:"imported_at"`
}
