package domain

import "strings"

// ReadingMode selects how annotated text is presented.
type ReadingMode string

const (
	ReadingModeFlow  ReadingMode = "flow"
	ReadingModeLearn ReadingMode = "learn"
)

func (m ReadingMode) String() string { return string(m) }

func (m ReadingMode) IsValid() bool {
	switch m {
	case ReadingModeFlow, ReadingModeLearn:
		return true
	}
	return false
}

// ScaffoldLevel controls how much support each annotated word carries.
// 1 shows the most help, 3 the least.
type ScaffoldLevel int

const (
	ScaffoldLevelFull  ScaffoldLevel = 1
	ScaffoldLevelHint  ScaffoldLevel = 2
	ScaffoldLevelBare  ScaffoldLevel = 3
	DefaultScaffolding               = ScaffoldLevelHint
)

func (l ScaffoldLevel) IsValid() bool {
	return l >= ScaffoldLevelFull && l <= ScaffoldLevelBare
}

// Difficulty is a CEFR rank from 1 (A1) to 6 (C2).
type Difficulty int

const (
	MinDifficulty Difficulty = 1
	MaxDifficulty Difficulty = 6
)

func (d Difficulty) IsValid() bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}

// Clamp forces d into [MinDifficulty, MaxDifficulty].
func (d Difficulty) Clamp() Difficulty {
	switch {
	case d < MinDifficulty:
		return MinDifficulty
	case d > MaxDifficulty:
		return MaxDifficulty
	}
	return d
}

// VocabLevel is the user's stated CEFR proficiency.
type VocabLevel string

const (
	VocabLevelA1 VocabLevel = "A1"
	VocabLevelA2 VocabLevel = "A2"
	VocabLevelB1 VocabLevel = "B1"
	VocabLevelB2 VocabLevel = "B2"
	VocabLevelC1 VocabLevel = "C1"
	VocabLevelC2 VocabLevel = "C2"

	DefaultVocabLevel = VocabLevelB1
)

var vocabThresholds = map[VocabLevel]Difficulty{
	VocabLevelA1: 1,
	VocabLevelA2: 2,
	VocabLevelB1: 3,
	VocabLevelB2: 4,
	VocabLevelC1: 5,
	VocabLevelC2: 6,
}

func (v VocabLevel) String() string { return string(v) }

func (v VocabLevel) IsValid() bool {
	_, ok := vocabThresholds[v]
	return ok
}

// Threshold returns the minimum difficulty an item needs to be annotated.
// Unknown levels annotate everything.
func (v VocabLevel) Threshold() Difficulty {
	if d, ok := vocabThresholds[VocabLevel(strings.ToUpper(string(v)))]; ok {
		return d
	}
	return MinDifficulty
}
