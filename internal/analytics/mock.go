package analytics

import (
	"strconv"
	"time"
)

var mockWeek = []struct {
	views      int64
	engagement int64
}{
	{45000, 3200},
	{52000, 4100},
	{48000, 3800},
	{61000, 5200},
	{75000, 6800},
	{68000, 5900},
	{58000, 4900},
}

// Mock returns the data points the dashboard is seeded with on an empty storage.
// It holds two weeks of history so summaries and growth rates have something to compare.
func Mock() []*Create {
	creates := []*Create{
		{ID: "1", Date: "2024-01-15", Views: 45000, Engagement: 3200, Platform: "TikTok", ContentID: "1"},
		{ID: "2", Date: "2024-01-14", Views: 52000, Engagement: 4100, Platform: "Instagram", ContentID: "2"},
	}

	id := len(creates)
	youtubeStart := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	for i, day := range mockWeek {
		id++
		creates = append(creates, &Create{
			ID:         strconv.Itoa(id),
			Date:       youtubeStart.AddDate(0, 0, i).Format(DateLayout),
			Views:      day.views,
			Engagement: day.engagement,
			Platform:   "YouTube",
			ContentID:  "3",
		})
	}

	tiktokStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		id++
		creates = append(creates, &Create{
			ID:         strconv.Itoa(id),
			Date:       tiktokStart.AddDate(0, 0, i).Format(DateLayout),
			Views:      30000 + int64(i)*1000,
			Engagement: 2000 + int64(i)*100,
			Platform:   "TikTok",
			ContentID:  "4",
		})
	}

	return creates
}
