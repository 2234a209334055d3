package osmparser

// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
var acceptedHighway = map[string]struct{}{
	"motorway":       {},
	"motorway_link":  {},
	"trunk":          {},
	"trunk_link":     {},
	"primary":        {},
	"primary_link":   {},
	"secondary":      {},
	"secondary_link": {},
	"tertiary":       {},
	"tertiary_link":  {},
	"residential":    {},
	"service":        {},
	"road":           {},
	"unclassified":   {},
	"living_street":  {},
	"motorroad":      {},
}

const (
	LOG_EVERY_N_WAYS = 50000
)
