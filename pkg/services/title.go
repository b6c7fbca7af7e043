package services

import (
	"regexp"
	"strings"

	ptn "github.com/razsteinmetz/go-ptn"
)

// yearSuffix matches a trailing "(2023)" style year on an item name
var yearSuffix = regexp.MustCompile(`\s*\((\d{4})\)\s*$`)

// cleanMovieTitle normalizes a movie name for keys and captions.
//
// Jellyfin sometimes reports movie names with the year embedded
// ("Test Movie (2023)") or, for unmatched items, the raw release name of
// the file. The embedded year is stripped, and when the payload carried no
// year, one recovered from the name is used instead.
func cleanMovieTitle(name string, year int64) (string, int64) {
	title := strings.TrimSpace(name)

	if m := yearSuffix.FindStringSubmatch(title); m != nil {
		title = strings.TrimSpace(yearSuffix.ReplaceAllString(title, ""))
		if year == 0 {
			year = parseYear(m[1])
		}
		return title, year
	}

	// Release-style names ("Test.Movie.2023.1080p.BluRay-GRP") carry no
	// spaces; parse them like the download pipeline would.
	if year == 0 && strings.Count(title, ".") >= 2 && !strings.Contains(title, " ") {
		if info, err := ptn.Parse(title); err == nil && info.Title != "" {
			cleaned := strings.TrimSpace(strings.ReplaceAll(info.Title, ".", " "))
			if cleaned != "" {
				return cleaned, int64(info.Year)
			}
		}
	}

	return title, year
}

func parseYear(s string) int64 {
	var year int64
	for _, r := range s {
		year = year*10 + int64(r-'0')
	}
	return year
}
