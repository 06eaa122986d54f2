package domain

// Settings limits. MaxPlayers bounds follow the 2-10 room size the game
// supports; the rest keep clients from configuring unplayable rooms.
const (
	MinRoomSize  = 2
	MaxRoomSize  = 10
	MinRounds    = 1
	MaxRounds    = 10
	MinDrawTime  = 15
	MaxDrawTime  = 300
	MaxHintCount = 5
)

// Settings holds the per-room game parameters. Mutable only while the
// room is in the lobby, and only by the host.
type Settings struct {
	MaxPlayers      int `json:"maxPlayers"`
	TotalRounds     int `json:"totalRounds"`
	DrawTimeSeconds int `json:"drawTimeSeconds"`
	HintCount       int `json:"hintCount"`
}

// DefaultSettings returns the default room settings
func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:      8,
		TotalRounds:     3,
		DrawTimeSeconds: 60,
		HintCount:       2,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	MaxPlayers      *int `json:"maxPlayers,omitempty"`
	TotalRounds     *int `json:"totalRounds,omitempty"`
	DrawTimeSeconds *int `json:"drawTimeSeconds,omitempty"`
	HintCount       *int `json:"hintCount,omitempty"`
}

// Apply merges the patch into a copy of the settings, validating every
// supplied field. An out-of-range value rejects the whole patch.
func (s Settings) Apply(p SettingsPatch) (Settings, error) {
	if p.MaxPlayers != nil {
		if *p.MaxPlayers < MinRoomSize || *p.MaxPlayers > MaxRoomSize {
			return s, ErrInvalidSettings
		}
		s.MaxPlayers = *p.MaxPlayers
	}
	if p.TotalRounds != nil {
		if *p.TotalRounds < MinRounds || *p.TotalRounds > MaxRounds {
			return s, ErrInvalidSettings
		}
		s.TotalRounds = *p.TotalRounds
	}
	if p.DrawTimeSeconds != nil {
		if *p.DrawTimeSeconds < MinDrawTime || *p.DrawTimeSeconds > MaxDrawTime {
			return s, ErrInvalidSettings
		}
		s.DrawTimeSeconds = *p.DrawTimeSeconds
	}
	if p.HintCount != nil {
		if *p.HintCount < 0 || *p.HintCount > MaxHintCount {
			return s, ErrInvalidSettings
		}
		s.HintCount = *p.HintCount
	}
	return s, nil
}
