package statistics

const (
	// DefaultRecentWindow is the number of latest draws inspected for hot/cold symbols
	DefaultRecentWindow = 20
	// DefaultHotThreshold is the minimum appearances inside the window for a symbol to be hot
	DefaultHotThreshold = 3
)

// SymbolStat summarizes one symbol across the whole history and the recent window
type SymbolStat struct {
	Symbol      int     `json:"symbol"`
	Count       int     `json:"count"`
	Frequency   float64 `json:"frequency"`
	Gap         int     `json:"gap"`
	RecentCount int     `json:"recent_count"`
}

// Report is the per-symbol breakdown served by the statistics endpoint and CLI
type Report struct {
	DrawCount     int          `json:"draw_count"`
	Window        int          `json:"window"`
	Primary       []SymbolStat `json:"numbers"`
	Secondary     []SymbolStat `json:"stars"`
	HotPrimary    []int        `json:"hot_numbers"`
	ColdPrimary   []int        `json:"cold_numbers"`
	HotSecondary  []int        `json:"hot_stars"`
	ColdSecondary []int        `json:"cold_stars"`
}

// Report builds per-symbol statistics. A symbol is hot when it appeared at least
// hotThreshold times in the last window draws and cold when it did not appear at all.
// Without recent draws both lists stay empty.
func (h *HistoricalStatistics) Report(window, hotThreshold int) Report {
	recent := h.Recent(window)

	recentPrimary := make([]int, h.game.PrimaryRange+1)
	recentSecondary := make([]int, h.game.SecondaryRange+1)
	for _, d := range recent {
		for _, p := range d.Primary {
			if p >= 1 && p <= h.game.PrimaryRange {
				recentPrimary[p]++
			}
		}
		for _, s := range d.Secondary {
			if s >= 1 && s <= h.game.SecondaryRange {
				recentSecondary[s]++
			}
		}
	}

	r := Report{
		DrawCount:     h.drawCount,
		Window:        len(recent),
		Primary:       make([]SymbolStat, 0, h.game.PrimaryRange),
		Secondary:     make([]SymbolStat, 0, h.game.SecondaryRange),
		HotPrimary:    []int{},
		ColdPrimary:   []int{},
		HotSecondary:  []int{},
		ColdSecondary: []int{},
	}

	for s := 1; s <= h.game.PrimaryRange; s++ {
		r.Primary = append(r.Primary, SymbolStat{
			Symbol:      s,
			Count:       h.PrimaryCount(s),
			Frequency:   h.primaryFrequencies.Get(s),
			Gap:         h.PrimaryGap(s),
			RecentCount: recentPrimary[s],
		})
		if len(recent) == 0 {
			continue
		}
		if recentPrimary[s] >= hotThreshold {
			r.HotPrimary = append(r.HotPrimary, s)
		} else if recentPrimary[s] == 0 {
			r.ColdPrimary = append(r.ColdPrimary, s)
		}
	}

	for s := 1; s <= h.game.SecondaryRange; s++ {
		r.Secondary = append(r.Secondary, SymbolStat{
			Symbol:      s,
			Count:       h.SecondaryCount(s),
			Frequency:   h.secondaryFrequencies.Get(s),
			Gap:         h.SecondaryGap(s),
			RecentCount: recentSecondary[s],
		})
		if len(recent) == 0 {
			continue
		}
		if recentSecondary[s] >= hotThreshold {
			r.HotSecondary = append(r.HotSecondary, s)
		} else if recentSecondary[s] == 0 {
			r.ColdSecondary = append(r.ColdSecondary, s)
		}
	}

	return r
}
