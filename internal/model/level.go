package model

import "strings"

// School level codes, ordered from lowest to highest grade. The codes are the
// single on-disk representation; display names and the various human spellings
// accepted at ingestion are mapped onto them.
var LevelCodes = []string{
	"cp1", "cp2",
	"ce1", "ce2",
	"cm1", "cm2",
	"sixieme", "cinquieme", "quatrieme", "troisieme",
	"seconde", "premiere", "terminale",
}

var levelLabels = map[string]string{
	"cp1": "CP1", "cp2": "CP2",
	"ce1": "CE1", "ce2": "CE2",
	"cm1": "CM1", "cm2": "CM2",
	"sixieme": "6ème", "cinquieme": "5ème",
	"quatrieme": "4ème", "troisieme": "3ème",
	"seconde": "Seconde", "premiere": "Première", "terminale": "Terminale",
}

// levelAliases maps the spellings and abbreviations seen in requests and in
// LLM output to level codes. Keys are compared after lowercasing.
var levelAliases = map[string]string{
	"6ème": "sixieme", "6eme": "sixieme", "6e": "sixieme", "sixième": "sixieme",
	"5ème": "cinquieme", "5eme": "cinquieme", "5e": "cinquieme", "cinquième": "cinquieme",
	"4ème": "quatrieme", "4eme": "quatrieme", "4e": "quatrieme", "quatrième": "quatrieme",
	"3ème": "troisieme", "3eme": "troisieme", "3e": "troisieme", "troisième": "troisieme",
	"2nde": "seconde", "2de": "seconde",
	"1ère": "premiere", "1ere": "premiere", "première": "premiere",
	"tle": "terminale", "term": "terminale",
}

// NormalizeLevel maps a human spelling to its level code. Unrecognized input
// is lowercased and passed through unchanged rather than rejected, so that a
// new level only has to be added to the table, not to every caller.
func NormalizeLevel(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if code, ok := levelAliases[s]; ok {
		return code
	}
	for _, code := range LevelCodes {
		if s == code {
			return code
		}
	}
	return s
}

// LevelLabel returns the display name for a level code, falling back to the
// code itself.
func LevelLabel(code string) string {
	if label, ok := levelLabels[code]; ok {
		return label
	}
	return code
}

// AllowedLevels returns the level codes a student of the given level may
// access: their own level and everything below it. Unknown or empty levels
// get nothing.
func AllowedLevels(level string) []string {
	for i, code := range LevelCodes {
		if code == level {
			out := make([]string, i+1)
			copy(out, LevelCodes[:i+1])
			return out
		}
	}
	return nil
}
