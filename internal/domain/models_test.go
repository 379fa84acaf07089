package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		game    GameConfig
		wantErr bool
	}{
		{"default", DefaultGameConfig(), false},
		{"full range", GameConfig{PrimaryRange: 5, PrimaryCount: 5, SecondaryRange: 2, SecondaryCount: 2}, false},
		{"primary count exceeds range", GameConfig{PrimaryRange: 4, PrimaryCount: 5, SecondaryRange: 12, SecondaryCount: 2}, true},
		{"secondary count exceeds range", GameConfig{PrimaryRange: 50, PrimaryCount: 5, SecondaryRange: 1, SecondaryCount: 2}, true},
		{"zero primary count", GameConfig{PrimaryRange: 50, PrimaryCount: 0, SecondaryRange: 12, SecondaryCount: 2}, true},
		{"negative secondary range", GameConfig{PrimaryRange: 50, PrimaryCount: 5, SecondaryRange: -1, SecondaryCount: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.game.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewDraw(t *testing.T) {
	game := DefaultGameConfig()

	t.Run("sorts and copies", func(t *testing.T) {
		primary := []int{40, 3, 17, 9, 22}
		draw, err := NewDraw(game, primary, []int{11, 2}, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 9, 17, 22, 40}, draw.Primary)
		assert.Equal(t, []int{2, 11}, draw.Secondary)
		assert.Equal(t, 40, primary[0], "input must not be modified")
	})

	invalid := []struct {
		name      string
		primary   []int
		secondary []int
	}{
		{"too few primary", []int{1, 2, 3, 4}, []int{1, 2}},
		{"duplicate primary", []int{1, 2, 3, 4, 4}, []int{1, 2}},
		{"primary out of range", []int{1, 2, 3, 4, 51}, []int{1, 2}},
		{"zero secondary", []int{1, 2, 3, 4, 5}, []int{0, 2}},
		{"duplicate secondary", []int{1, 2, 3, 4, 5}, []int{7, 7}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDraw(game, tt.primary, tt.secondary, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDraw))
		})
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range AllStrategies {
		got, err := ParseStrategy(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStrategy("lucky")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	assert.True(t, StrategyRisky.IsEnsemble())
	assert.False(t, StrategyHot.IsEnsemble())
}
