package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input   string
		command string
		args    []string
	}{
		{"/start_learning", "start_learning", []string{}},
		{"/start-learning", "start_learning", []string{}},
		{"/Start_Learning", "start_learning", []string{}},
		{"/start_learning@VocabBot", "start_learning", []string{}},
		{"/set_repetition_time 09:30", "set_repetition_time", []string{"09:30"}},
		{"/set_words_count 5 15", "set_words_count", []string{"5", "15"}},
		{"  /help  ", "help", []string{}},
		{"hello there", "", nil},
		{"", "", nil},
		{"   ", "", nil},
	}

	for _, tt := range tests {
		command, args := splitCommand(tt.input)
		assert.Equal(t, tt.command, command, "input %q", tt.input)
		if tt.command != "" {
			assert.Equal(t, tt.args, args, "input %q", tt.input)
		}
	}
}

func TestParseTimeArg(t *testing.T) {
	tests := []struct {
		args       []string
		normalized string
		ok         bool
	}{
		{[]string{"09:30"}, "09:30", true},
		{[]string{"9:30"}, "09:30", true},
		{[]string{"23:59"}, "23:59", true},
		{[]string{"00:00"}, "00:00", true},
		{[]string{"24:00"}, "", false},
		{[]string{"12:60"}, "", false},
		{[]string{"noon"}, "", false},
		{[]string{}, "", false},
		{[]string{"09:30", "extra"}, "", false},
	}

	for _, tt := range tests {
		normalized, ok := parseTimeArg(tt.args)
		assert.Equal(t, tt.ok, ok, "args %v", tt.args)
		assert.Equal(t, tt.normalized, normalized, "args %v", tt.args)
	}
}

func TestParseWordsCountArgs(t *testing.T) {
	tests := []struct {
		args     []string
		newCount int
		repCount int
		ok       bool
	}{
		{[]string{"5", "15"}, 5, 15, true},
		{[]string{"1", "1"}, 1, 1, true},
		{[]string{"0", "15"}, 0, 0, false},
		{[]string{"5", "-1"}, 0, 0, false},
		{[]string{"five", "15"}, 0, 0, false},
		{[]string{"5"}, 0, 0, false},
		{[]string{}, 0, 0, false},
		{[]string{"5", "15", "25"}, 0, 0, false},
	}

	for _, tt := range tests {
		newCount, repCount, ok := parseWordsCountArgs(tt.args)
		assert.Equal(t, tt.ok, ok, "args %v", tt.args)
		assert.Equal(t, tt.newCount, newCount, "args %v", tt.args)
		assert.Equal(t, tt.repCount, repCount, "args %v", tt.args)
	}
}
