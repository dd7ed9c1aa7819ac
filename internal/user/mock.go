package user

import "time"

func mockTime(year int, month time.Month, day, hour, min int) *time.Time {
	val := time.Date(year, month, day, hour, min, 0, 0, time.UTC)
	return &val
}

// Mock returns the users the admin panel is seeded with on an empty storage
func Mock() []*Create {
	return []*Create{
		{
			ID:         "1",
			Email:      "creator@example.com",
			Name:       "John Silva",
			Plan:       PlanPro,
			Status:     StatusActive,
			CreatedAt:  *mockTime(2024, time.January, 15, 10, 30),
			LastLogin:  mockTime(2024, time.January, 20, 9, 15),
			TotalPosts: 45,
			SignupIP:   "192.168.1.1",
		},
		{
			ID:         "2",
			Email:      "maria@test.com",
			Name:       "Maria Santos",
			Plan:       PlanFree,
			Status:     StatusActive,
			CreatedAt:  *mockTime(2024, time.January, 10, 14, 20),
			LastLogin:  mockTime(2024, time.January, 19, 16, 45),
			TotalPosts: 12,
			SignupIP:   "192.168.1.1",
		},
		{
			ID:         "3",
			Email:      "carlos@creator.com",
			Name:       "Carlos Oliveira",
			Plan:       PlanPro,
			Status:     StatusInactive,
			CreatedAt:  *mockTime(2023, time.December, 20, 8, 15),
			LastLogin:  mockTime(2024, time.January, 5, 11, 30),
			TotalPosts: 78,
			SignupIP:   "10.0.0.1",
		},
		{
			ID:         "4",
			Email:      "ana@influencer.com",
			Name:       "Ana Costa",
			Plan:       PlanFree,
			Status:     StatusSuspended,
			CreatedAt:  *mockTime(2024, time.January, 8, 12, 0),
			TotalPosts: 3,
			SignupIP:   "172.16.0.1",
		},
	}
}
