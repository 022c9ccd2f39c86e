// Package mood classifies user text into a small set of emotional-state tags
// and tracks a bounded history that steers the assistant's prompt tone.
package mood

import "strings"

type Tag string

const (
	Stressed Tag = "stressed"
	Sad      Tag = "sad"
	Tired    Tag = "tired"
	Happy    Tag = "happy"
	Neutral  Tag = "neutral"
)

// Keyword lists are checked in fixed priority order: stressed > sad > tired >
// happy. A message carrying both a stressed and a happy word is stressed.
var keywordPriority = []struct {
	tag   Tag
	words []string
}{
	{Stressed, []string{"stressed", "stress", "anxious", "anxiety", "overwhelmed", "pressure", "frustrated", "tension", "chap lagche"}},
	{Sad, []string{"sad", "depressed", "unhappy", "upset", "crying", "heartbroken", "mon kharap"}},
	{Tired, []string{"tired", "exhausted", "sleepy", "fatigued", "drained", "klanto", "ghum pacche"}},
	{Happy, []string{"happy", "great", "awesome", "excited", "wonderful", "amazing", "khushi", "valo lagche"}},
}

// Detect returns the first tag whose keyword list matches the text
// (case-insensitive substring), or Neutral. No side effects.
func Detect(text string) Tag {
	lower := strings.ToLower(text)
	for _, entry := range keywordPriority {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.tag
			}
		}
	}
	return Neutral
}
