package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestApplyMergesSuppliedFields(t *testing.T) {
	updated, err := DefaultSettings().Apply(SettingsPatch{
		TotalRounds:     intPtr(5),
		DrawTimeSeconds: intPtr(90),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.TotalRounds)
	assert.Equal(t, 90, updated.DrawTimeSeconds)
	assert.Equal(t, DefaultSettings().MaxPlayers, updated.MaxPlayers)
	assert.Equal(t, DefaultSettings().HintCount, updated.HintCount)
}

func TestApplyEmptyPatchChangesNothing(t *testing.T) {
	updated, err := DefaultSettings().Apply(SettingsPatch{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), updated)
}

func TestApplyRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		patch SettingsPatch
	}{
		{"max players too low", SettingsPatch{MaxPlayers: intPtr(1)}},
		{"max players too high", SettingsPatch{MaxPlayers: intPtr(11)}},
		{"zero rounds", SettingsPatch{TotalRounds: intPtr(0)}},
		{"too many rounds", SettingsPatch{TotalRounds: intPtr(11)}},
		{"draw time too short", SettingsPatch{DrawTimeSeconds: intPtr(5)}},
		{"draw time too long", SettingsPatch{DrawTimeSeconds: intPtr(600)}},
		{"negative hints", SettingsPatch{HintCount: intPtr(-1)}},
		{"too many hints", SettingsPatch{HintCount: intPtr(6)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultSettings().Apply(tt.patch)
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestApplyRejectsWholePatchOnOneBadField(t *testing.T) {
	settings := DefaultSettings()
	updated, err := settings.Apply(SettingsPatch{
		TotalRounds: intPtr(5),
		HintCount:   intPtr(99),
	})

	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, settings, updated, "a rejected patch leaves settings untouched")
}
