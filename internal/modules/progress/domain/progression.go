package domain

import "fmt"

type Difficulty string

const (
	DifficultyEasy     Difficulty = "facil"
	DifficultyNormal   Difficulty = "normal"
	DifficultyAdvanced Difficulty = "avanzado"
)

var difficultyCycle = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyAdvanced}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyAdvanced:
		return true
	}
	return false
}

func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(raw)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (want facil|normal|avanzado)", raw)
	}
	return d, nil
}

// Ratio is the focus:break ratio of the difficulty.
func (d Difficulty) Ratio() int {
	switch d {
	case DifficultyEasy:
		return 2
	case DifficultyAdvanced:
		return 4
	default:
		return 3
	}
}

func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy 1:2"
	case DifficultyAdvanced:
		return "Advanced 1:4"
	default:
		return "Normal 1:3"
	}
}

// Next cycles facil -> normal -> avanzado -> facil.
func (d Difficulty) Next() Difficulty {
	for i, c := range difficultyCycle {
		if c == d {
			return difficultyCycle[(i+1)%len(difficultyCycle)]
		}
	}
	return DifficultyNormal
}

func Level(s ProgressState) int {
	return 1 + s.ExpTotal/LevelSize
}

func ExpInLevel(s ProgressState) int {
	return s.ExpTotal % LevelSize
}

func HPRemaining(s ProgressState) int {
	return max(0, s.HPTotal-s.DanoTotal)
}

func ScaledDamage(s ProgressState, kind Kind) int {
	lvl := Level(s)
	if kind == KindDeep {
		return BaseDamageDeep + (lvl-1)*LevelBonusDeep
	}
	return BaseDamageMini + (lvl-1)*LevelBonusMini
}

func ExpFor(kind Kind) int {
	if kind == KindDeep {
		return ExpDeep
	}
	return ExpMini
}

func TokensAvailable(s ProgressState) int {
	return max(0, s.ExpTotal/ExpPerToken-s.TokensSpent)
}

// BalanceSeconds is the break time still allowed by the ratio; negative
// values are break debt.
func BalanceSeconds(s ProgressState) int {
	return s.TotalFocusSec/s.Difficulty.Ratio() - s.TotalBreakSec
}
