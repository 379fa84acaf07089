package statistics

import (
	"testing"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draw(primary []int, secondary []int) domain.Draw {
	return domain.Draw{Primary: primary, Secondary: secondary}
}

func repeatDraw(d domain.Draw, n int) []domain.Draw {
	draws := make([]domain.Draw, n)
	for i := range draws {
		draws[i] = d
	}
	return draws
}

func TestBuild_EmptyHistory(t *testing.T) {
	h := Build(domain.DefaultGameConfig(), nil)

	assert.True(t, h.Empty())
	assert.True(t, h.PrimaryFrequencies().Empty())
	assert.True(t, h.SecondaryFrequencies().Empty())
	assert.True(t, h.PairFrequencies().Empty())
	assert.Equal(t, 0, h.DrawCount())
	assert.Equal(t, 0.0, h.PrimaryFrequencies().Get(7))
}

func TestBuild_IdenticalDraws(t *testing.T) {
	game := domain.DefaultGameConfig()
	h := Build(game, repeatDraw(draw([]int{1, 2, 3, 4, 5}, []int{1, 2}), 100))

	require.False(t, h.Empty())
	for s := 1; s <= game.PrimaryRange; s++ {
		want := 0.0
		if s <= 5 {
			want = 1.0
		}
		assert.Equal(t, want, h.PrimaryFrequencies().Get(s), "primary %d", s)
	}
	for s := 1; s <= game.SecondaryRange; s++ {
		want := 0.0
		if s <= 2 {
			want = 1.0
		}
		assert.Equal(t, want, h.SecondaryFrequencies().Get(s), "secondary %d", s)
	}

	// All ten pairs occur in every draw, so each scores 1.0
	assert.Len(t, h.PairFrequencies(), 10)
	score, ok := h.PairFrequencies().Lookup(5, 1)
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)
	_, ok = h.PairFrequencies().Lookup(1, 6)
	assert.False(t, ok)
}

func TestBuild_PairNormalization(t *testing.T) {
	game := domain.DefaultGameConfig()
	h := Build(game, []domain.Draw{
		draw([]int{1, 2, 3, 4, 5}, []int{1, 2}),
		draw([]int{1, 2, 10, 11, 12}, []int{3, 4}),
	})

	score, _ := h.PairFrequencies().Lookup(1, 2)
	assert.Equal(t, 1.0, score)
	score, _ = h.PairFrequencies().Lookup(10, 11)
	assert.Equal(t, 0.5, score)
	assert.Equal(t, 1.0, h.PrimaryFrequencies().Get(1))
	assert.Equal(t, 0.5, h.PrimaryFrequencies().Get(10))
	assert.Equal(t, 2, h.PrimaryCount(1))
	assert.Equal(t, 1, h.SecondaryCount(4))
}

func TestGapsAndRecent(t *testing.T) {
	game := domain.DefaultGameConfig()
	draws := []domain.Draw{
		draw([]int{1, 2, 3, 4, 5}, []int{1, 2}),
		draw([]int{6, 7, 8, 9, 10}, []int{3, 4}),
		draw([]int{1, 7, 20, 30, 40}, []int{1, 5}),
	}
	h := Build(game, draws)

	assert.Equal(t, 0, h.PrimaryGap(1))
	assert.Equal(t, 2, h.PrimaryGap(2))
	assert.Equal(t, 1, h.PrimaryGap(6))
	assert.Equal(t, 3, h.PrimaryGap(50), "never seen reports full history")
	assert.Equal(t, 1, h.SecondaryGap(3))

	assert.Equal(t, draws[1:], h.Recent(2))
	assert.Equal(t, draws, h.Recent(10))
	assert.Nil(t, h.Recent(0))
}

func TestFromTables_WithDraws(t *testing.T) {
	game := domain.DefaultGameConfig()
	draws := repeatDraw(draw([]int{1, 2, 3, 4, 5}, []int{1, 2}), 4)
	built := Build(game, draws)

	restored := FromTables(game, built.PrimaryFrequencies(), built.SecondaryFrequencies(), built.PairFrequencies(), built.DrawCount())
	assert.False(t, restored.Empty())
	assert.Empty(t, restored.Draws())
	assert.Equal(t, 0, restored.PrimaryGap(1), "no history means gap of zero draws")

	attached := restored.WithDraws(draws)
	assert.Len(t, attached.Draws(), 4)
	assert.Equal(t, 0, attached.PrimaryGap(1))
	assert.Equal(t, 4, attached.PrimaryGap(9))
	assert.Equal(t, built.PrimaryFrequencies(), attached.PrimaryFrequencies())
}

func TestReport_HotAndCold(t *testing.T) {
	game := domain.GameConfig{PrimaryRange: 10, PrimaryCount: 2, SecondaryRange: 4, SecondaryCount: 1}
	draws := []domain.Draw{
		draw([]int{1, 2}, []int{1}),
		draw([]int{1, 3}, []int{1}),
		draw([]int{1, 4}, []int{1}),
		draw([]int{2, 5}, []int{2}),
	}
	h := Build(game, draws)

	r := h.Report(DefaultRecentWindow, DefaultHotThreshold)
	assert.Equal(t, 4, r.DrawCount)
	assert.Equal(t, 4, r.Window)
	assert.Equal(t, []int{1}, r.HotPrimary)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, r.ColdPrimary)
	assert.Equal(t, []int{1}, r.HotSecondary)
	assert.Equal(t, []int{3, 4}, r.ColdSecondary)
	require.Len(t, r.Primary, 10)
	assert.Equal(t, 3, r.Primary[0].Count)
	assert.Equal(t, 0.75, r.Primary[0].Frequency)

	empty := Build(game, nil).Report(DefaultRecentWindow, DefaultHotThreshold)
	assert.Empty(t, empty.HotPrimary)
	assert.Empty(t, empty.ColdPrimary)
}
