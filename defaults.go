package markvault

import (
	"time"

	"github.com/picobrowse/markvault/record"
)

// starterBookmarks is the fixed built-in set seeded into a bookmark store on
// first run. History stores never seed.
func starterBookmarks(now time.Time) []record.Record {
	seed := func(name, url string, tags ...string) record.Record {
		r := record.Record{
			Name:       name,
			URL:        url,
			CreatedAt:  now,
			ModifiedAt: now,
		}
		for _, t := range tags {
			r.AddTag(t)
		}
		return r
	}

	return []record.Record{
		seed("Google", "https://www.google.com", "search"),
		seed("Wikipedia", "https://www.wikipedia.org", "reference"),
		seed("YouTube", "https://www.youtube.com", "video"),
		seed("OpenStreetMap", "https://www.openstreetmap.org", "maps"),
	}
}
