package services

import "testing"

func TestCleanMovieTitle(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		year      int64
		wantTitle string
		wantYear  int64
	}{
		{"plain name", "Test Movie", 2023, "Test Movie", 2023},
		{"year embedded in name", "Test Movie (2023)", 2023, "Test Movie", 2023},
		{"year recovered from name", "Test Movie (2023)", 0, "Test Movie", 2023},
		{"payload year wins over embedded", "Test Movie (1999)", 2023, "Test Movie", 2023},
		{"release-style name", "Test.Movie.2023.1080p.BluRay", 0, "Test Movie", 2023},
		{"parenthetical that is not a year", "Test Movie (Director's Cut)", 2023, "Test Movie (Director's Cut)", 2023},
		{"whitespace trimmed", "  Test Movie (2023) ", 0, "Test Movie", 2023},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTitle, gotYear := cleanMovieTitle(tt.input, tt.year)
			if gotTitle != tt.wantTitle || gotYear != tt.wantYear {
				t.Errorf("cleanMovieTitle(%q, %d) = (%q, %d), want (%q, %d)",
					tt.input, tt.year, gotTitle, gotYear, tt.wantTitle, tt.wantYear)
			}
		})
	}
}
