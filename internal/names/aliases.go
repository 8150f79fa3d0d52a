package names

// Aliases maps known spelling divergences between upstream feeds and our
// canonical store. Key: normalized feed name. Value: the stored name to
// resolve it to. Curated by hand as mismatches are reported.
var Aliases = map[string]string{
	"nicolas claxton":  "nic claxton",
	"cameron johnson":  "cam johnson",
	"kenneth lofton":   "kenneth lofton jr",
	"nigel hayes":      "nigel hayes-davis",
	"bones hyland":     "nahshon hyland",
	"herbert jones":    "herb jones",
	"gregory jackson":  "gg jackson",
	"jabari smith":     "jabari smith jr",
}

// Alias returns the stored-side key to seek for a feed key, when one is
// curated.
func Alias(feedKey string) (string, bool) {
	v, ok := Aliases[feedKey]
	if !ok {
		return "", false
	}
	// Alias values are written in raw form for readability; normalize so the
	// lookup key matches feed keys (e.g. suffix stripping).
	return Normalize(v), true
}
