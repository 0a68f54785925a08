package domain

import (
	"errors"

	"flowrpg/internal/platform/random"
)

// NameTables holds the word lists boss names are composed from.
type NameTables struct {
	Prefixes []string
	Suffixes []string
}

func (t NameTables) Validate() error {
	if len(t.Prefixes) == 0 || len(t.Suffixes) == 0 {
		return errors.New("boss name tables must not be empty")
	}
	return nil
}

func DefaultNames() NameTables {
	return NameTables{
		Prefixes: []string{
			"Thala", "Eldra", "Gor", "Varyn", "Isil", "Ner", "Kael", "Mor", "Silva", "Auren",
			"Luth", "Fjor", "Arkh", "Zar", "Tarn", "Ael", "Grim", "Veld", "Myra", "Orin",
			"Syla", "Rhel", "Vel", "Nyra", "Cor", "Ilra", "Fen", "Bryn", "Sor",
		},
		Suffixes: []string{
			"rion", "wyn", "gorn", "eth", "drel", "vash", "hollow", "dor", "wynne", "mist",
			"thorn", "dûn", "mar", "hael", "thir", "veil", "brand", "wraith", "bane", "shade",
			"kall", "moor", "spear", "loom", "spire",
		},
	}
}

// BossName concatenates one random prefix and one random suffix.
func BossName(r random.Source, t NameTables) string {
	if t.Validate() != nil {
		return DefaultBossName
	}
	return t.Prefixes[r.Intn(len(t.Prefixes))] + t.Suffixes[r.Intn(len(t.Suffixes))]
}

// HPRange is the inclusive hit point range of a boss spawned at level.
func HPRange(level int) (int, int) {
	lo := BaseHPMin + (level-1)*HPPerLevelMin
	hi := BaseHPMax + (level-1)*HPPerLevelMax
	if hi < lo {
		hi = lo + 10
	}
	return lo, hi
}

// SpawnBoss replaces the boss with a fresh one scaled to the current level.
// Experience, tokens and history are untouched.
func SpawnBoss(s *ProgressState, r random.Source, t NameTables) {
	lo, hi := HPRange(Level(*s))
	s.HPTotal = random.Between(r, lo, hi)
	s.DanoTotal = 0
	s.BossName = BossName(r, t)
}
