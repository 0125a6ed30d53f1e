package geo

// aliases maps alternate country spellings seen in onboarding data to
// the canonical keys used by the map layer's boundary reference.
// Unmapped names pass through unchanged; they simply render as "no data"
// downstream. Extend by adding entries.
var aliases = map[string]string{
	"United States of America": "USA",
	"United States":            "USA",
	"US":                       "USA",
	"U.S.":                     "USA",
	"UK":                       "United Kingdom",
	"Great Britain":            "United Kingdom",
	"England":                  "United Kingdom",
	"Republic of Korea":        "South Korea",
	"Korea, South":             "South Korea",
	"Russian Federation":       "Russia",
	"Viet Nam":                 "Vietnam",
	"Czechia":                  "Czech Republic",
	"UAE":                      "United Arab Emirates",
	"The Netherlands":          "Netherlands",
	"Holland":                  "Netherlands",
}

// Canonical returns the canonical geographic key for a country name, or
// the name unchanged when no alias is known.
func Canonical(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}
