package messages

import (
	"fmt"
	"strings"

	"github.com/ViacheslavMelnichenko/constant-learning/pkg/models"
)

// FormatNewWords renders the daily batch of new words with their
// meanings and phonetic transcriptions
func FormatNewWords(words []models.Word) string {
	if len(words) == 0 {
		return Get(NoNewWords)
	}

	var sb strings.Builder
	sb.WriteString(Get(NewWordsHeader))
	sb.WriteString("\n\n")

	for i, word := range words {
		sb.WriteString(fmt.Sprintf("%d. *%s* [%s]\n", i+1, word.TargetWord, word.Phonetic))
		sb.WriteString(fmt.Sprintf("   %s\n\n", word.SourceMeaning))
	}

	return sb.String()
}

// FormatRepetitionQuestions renders the prompts only, without answers
func FormatRepetitionQuestions(words []models.Word) string {
	if len(words) == 0 {
		return Get(NoRepetitionWords)
	}

	var sb strings.Builder
	sb.WriteString(Get(RepetitionHeader))
	sb.WriteString("\n\n")

	for i, word := range words {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, word.SourceMeaning))
	}

	return sb.String()
}

// FormatRepetitionAnswers renders the prompts together with the answers
func FormatRepetitionAnswers(words []models.Word) string {
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(Get(AnswersHeader))
	sb.WriteString("\n\n")

	for i, word := range words {
		sb.WriteString(fmt.Sprintf("%d. %s → *%s* [%s]\n", i+1, word.SourceMeaning, word.TargetWord, word.Phonetic))
	}

	return sb.String()
}
