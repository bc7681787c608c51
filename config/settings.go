package config

import (
	"os"
	"strconv"
)

// Settings collects the schedule grid and queue policy knobs. Everything has
// a default so a bare environment still boots.
type Settings struct {
	OpenHour    int // first slot of the day, 24h clock
	CloseHour   int // grid stops before this hour
	SlotMinutes int // grid increment

	AvgCutMinutes int // per-cut duration used by the wait estimate

	// Whether a no-show returns its slot to the bookable grid for the
	// rest of the day. Named policy flag; default keeps the slot held.
	NoShowReopensSlot bool
}

func LoadSettings() Settings {
	return Settings{
		OpenHour:          envInt("OPEN_HOUR", 9),
		CloseHour:         envInt("CLOSE_HOUR", 18),
		SlotMinutes:       envInt("SLOT_MINUTES", 30),
		AvgCutMinutes:     envInt("AVG_CUT_MINUTES", 30),
		NoShowReopensSlot: envBool("NO_SHOW_REOPENS_SLOT", false),
	}
}

func envInt(key string, fallback int) int {
	if env := os.Getenv(key); env != "" {
		if v, err := strconv.Atoi(env); err == nil {
			return v
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if env := os.Getenv(key); env != "" {
		if v, err := strconv.ParseBool(env); err == nil {
			return v
		}
	}
	return fallback
}
