package model

import (
	"strings"
	"time"
)

// BuiltinDaytypes is the fixed day-type vocabulary. User-defined day types are
// additional rows and may never shadow these keys.
var BuiltinDaytypes = []string{"push", "pull", "leg", "arm"}

// BuiltinExercises maps each built-in day type to its curated, ordered
// exercise list.
var BuiltinExercises = map[string][]string{
	"arm": {
		"prechair arm curl",
		"tricep overhead press",
		"tricep extension",
		"Hammer curl",
	},
	"leg": {
		"calf press",
		"leg curl",
		"squat",
		"leg extension",
	},
	"push": {
		"tricep overhead press",
		"tricep extension",
		"should press",
		"lateral cable raise",
		"rear delt",
		"chest press",
	},
	"pull": {
		"prechair arm curl",
		"Hammer curl",
		"vertical back",
		"horizontal back",
		"shruggs",
	},
}

// NormalizeKey trims and lowercases a label for case-insensitive uniqueness.
func NormalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// IsBuiltinDaytype reports whether the normalized key names a built-in.
func IsBuiltinDaytype(key string) bool {
	for _, name := range BuiltinDaytypes {
		if key == name {
			return true
		}
	}
	return false
}

type Daytype struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
}

type Exercise struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DaytypeKey string    `json:"daytypeKey"`
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	CreatedAt  time.Time `json:"createdAt"`
}
