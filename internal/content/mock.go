package content

import "time"

const mockThumbnailQuery = "?auto=compress&cs=tinysrgb&w=400"

// Mock returns the content items the dashboard is seeded with on an empty storage
func Mock() []*Create {
	return []*Create{
		{
			ID:             "1",
			Title:          "The Morning Routine That Changed My Life",
			Platform:       "TikTok",
			PublishedAt:    time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
			Views:          245000,
			Likes:          18500,
			Shares:         2300,
			Comments:       1200,
			Thumbnail:      "https://images.pexels.com/photos/3786157/pexels-photo-3786157.jpeg" + mockThumbnailQuery,
			Status:         StatusPublished,
			Performance:    PerformanceViral,
			EngagementRate: 8.2,
		},
		{
			ID:             "2",
			Title:          "Healthy Breakfast Ideas",
			Platform:       "Instagram",
			PublishedAt:    time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC),
			Views:          125000,
			Likes:          9200,
			Shares:         1100,
			Comments:       850,
			Thumbnail:      "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg" + mockThumbnailQuery,
			Status:         StatusPublished,
			Performance:    PerformanceGood,
			EngagementRate: 9.1,
		},
		{
			ID:             "3",
			Title:          "No-Equipment Home Workout",
			Platform:       "YouTube",
			PublishedAt:    time.Date(2024, 1, 13, 16, 30, 0, 0, time.UTC),
			Views:          89000,
			Likes:          6800,
			Shares:         890,
			Comments:       450,
			Thumbnail:      "https://images.pexels.com/photos/4753990/pexels-photo-4753990.jpeg" + mockThumbnailQuery,
			Status:         StatusPublished,
			Performance:    PerformanceAverage,
			EngagementRate: 7.6,
		},
		{
			ID:             "4",
			Title:          "Productivity Tips for Creators",
			Platform:       "TikTok",
			PublishedAt:    time.Date(2024, 1, 12, 10, 15, 0, 0, time.UTC),
			Views:          156000,
			Likes:          12400,
			Shares:         1800,
			Comments:       920,
			Thumbnail:      "https://images.pexels.com/photos/4050315/pexels-photo-4050315.jpeg" + mockThumbnailQuery,
			Status:         StatusPublished,
			Performance:    PerformanceGood,
			EngagementRate: 9.5,
		},
		{
			ID:             "5",
			Title:          "The Perfect Home Office Setup",
			Platform:       "Instagram",
			PublishedAt:    time.Date(2024, 1, 11, 14, 20, 0, 0, time.UTC),
			Views:          78000,
			Likes:          5600,
			Shares:         670,
			Comments:       340,
			Thumbnail:      "https://images.pexels.com/photos/4050315/pexels-photo-4050315.jpeg" + mockThumbnailQuery,
			Status:         StatusPublished,
			Performance:    PerformanceAverage,
			EngagementRate: 8.1,
		},
		{
			ID:             "6",
			Title:          "Quick and Healthy Recipes",
			Platform:       "YouTube",
			PublishedAt:    time.Date(2024, 1, 10, 9, 45, 0, 0, time.UTC),
			Views:          203000,
			Likes:          15600,
			Shares:         2100,
			Comments:       1350,
			Thumbnail:      "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg" + mockThumbnailQuery,
			Status:         StatusPublished,
			Performance:    PerformanceViral,
			EngagementRate: 9.3,
		},
	}
}
