// Package jobs serves the simulated job listing. The table is generated
// once per process from fixed pools and cached; it stands in for a real
// listing backend and carries no persistence.
package jobs

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
)

// Listing is one simulated job opening.
type Listing struct {
	Position string `json:"position"`
	Company  string `json:"company"`
	Salary   string `json:"salary"`
	Location string `json:"location"`
}

// FilterAll matches every position or location.
const FilterAll = ""

var (
	companies = []string{"Gojek", "Tokopedia", "Shopee", "Traveloka", "Grab", "Amazon", "Microsoft", "Google"}
	positions = []string{"Data Analyst", "Software Engineer", "Product Manager", "UI/UX Designer", "DevOps Engineer", "Marketing Specialist", "HR Recruiter"}
	locations = []string{"Jakarta", "Remote", "Bandung", "Surabaya", "Yogyakarta"}
)

const listingCount = 50

// Source hands out the cached listing table and filtered views of it.
type Source struct {
	once     sync.Once
	seed     int64
	listings []Listing
}

// NewSource creates a listing source. The seed fixes the generated table,
// which keeps tests reproducible; use any value for a live run.
func NewSource(seed int64) *Source {
	return &Source{seed: seed}
}

func (s *Source) generate() {
	rng := rand.New(rand.NewSource(s.seed))
	s.listings = make([]Listing, 0, listingCount)
	for i := 0; i < listingCount; i++ {
		s.listings = append(s.listings, Listing{
			Position: positions[rng.Intn(len(positions))],
			Company:  companies[rng.Intn(len(companies))],
			Salary:   fmt.Sprintf("Rp %d Juta", 5+rng.Intn(21)),
			Location: locations[rng.Intn(len(locations))],
		})
	}
}

// All returns the full table. The slice is shared; callers must not mutate it.
func (s *Source) All() []Listing {
	s.once.Do(s.generate)
	return s.listings
}

// Positions returns the distinct positions present in the table, sorted.
func (s *Source) Positions() []string {
	return distinct(s.All(), func(l Listing) string { return l.Position })
}

// Locations returns the distinct locations present in the table, sorted.
func (s *Source) Locations() []string {
	return distinct(s.All(), func(l Listing) string { return l.Location })
}

// Search filters the table. Position and location are exact matches unless
// FilterAll; the keyword is a case-insensitive substring match over
// position and company.
func (s *Source) Search(keyword, position, location string) []Listing {
	keyword = strings.ToLower(keyword)

	result := make([]Listing, 0)
	for _, l := range s.All() {
		if position != FilterAll && l.Position != position {
			continue
		}
		if location != FilterAll && l.Location != location {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(l.Position), keyword) &&
			!strings.Contains(strings.ToLower(l.Company), keyword) {
			continue
		}
		result = append(result, l)
	}
	return result
}

func distinct(listings []Listing, key func(Listing) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, l := range listings {
		k := key(l)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}
