package stubapi

func ptr(s string) *string { return &s }

// seedCatalog loads the default development catalog.
func seedCatalog(s *Server) {
	entries := []struct {
		badge   Badge
		earners int
	}{
		{
			badge: Badge{
				ID:           1,
				Name:         "Cyber Titan",
				Description:  "Awarded for sustained excellence across offensive and defensive security disciplines.",
				Image:        ptr("https://cdn.example.com/badges/cyber-titan.png"),
				Category:     ptr("Achievement"),
				Level:        ptr("Advanced"),
				Vertical:     ptr("Cyber Security"),
				Holders:      42,
				YearLaunched: 2022,
			},
			earners: 42,
		},
		{
			badge: Badge{
				ID:           2,
				Name:         "Threat Hunter",
				Description:  "Recognizes demonstrated skill in proactive threat detection and incident triage.",
				Image:        ptr("https://cdn.example.com/badges/threat-hunter.png"),
				Category:     ptr("Skill"),
				Level:        ptr("Intermediate"),
				Vertical:     ptr("Blue Team"),
				Holders:      128,
				YearLaunched: 2023,
			},
			earners: 128,
		},
		{
			badge: Badge{
				ID:           3,
				Name:         "OSINT Scout",
				Description:  "Completed the open-source intelligence practitioner track.",
				Image:        ptr("https://cdn.example.com/badges/osint-scout.png"),
				Category:     ptr("Course"),
				Level:        ptr("Beginner"),
				Vertical:     ptr("Intelligence"),
				Holders:      310,
				YearLaunched: 2023,
			},
			earners: 310,
		},
		{
			badge: Badge{
				ID:           4,
				Name:         "Red Team Operator",
				Description:  "Certified completion of the adversary emulation program.",
				Image:        ptr("https://cdn.example.com/badges/red-team-operator.png"),
				Category:     ptr("Certification"),
				Level:        ptr("Advanced"),
				Vertical:     ptr("Red Team"),
				Holders:      57,
				YearLaunched: 2024,
			},
			earners: 57,
		},
		{
			badge: Badge{
				ID:           5,
				Name:         "Secure Coder",
				Description:  "Built and shipped a project passing the secure development review.",
				Image:        ptr("https://cdn.example.com/badges/secure-coder.png"),
				Category:     ptr("Skill"),
				Level:        ptr("Intermediate"),
				Vertical:     ptr("AppSec"),
				Holders:      201,
				YearLaunched: 2024,
			},
			earners: 201,
		},
	}

	for _, e := range entries {
		s.badges = append(s.badges, e.badge)
		s.earners[e.badge.ID] = e.earners
	}
}
