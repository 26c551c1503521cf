package jup

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Venue is one execution venue the quoting service may route through.
type Venue string

const (
	VenueRaydium     Venue = "Raydium"
	VenueMeteoraDLMM Venue = "Meteora DLMM"
	VenueMeteora     Venue = "Meteora"
	VenueWhirlpool   Venue = "Whirlpool"
	VenuePhoenix     Venue = "Phoenix"
)

// Canonical ordering, used to render a deterministic filter string.
var allVenues = []Venue{VenueRaydium, VenueMeteoraDLMM, VenueMeteora, VenueWhirlpool, VenuePhoenix}

// VenueSet restricts which venues a quote request may route through.
type VenueSet struct {
	set mapset.Set[Venue]
}

func NewVenueSet(venues ...Venue) VenueSet {
	return VenueSet{set: mapset.NewSet(venues...)}
}

// AllVenues is the default trading set. Plain Meteora pools are left out:
// their quotes are too thin for round trips.
func AllVenues() VenueSet {
	return NewVenueSet(VenueRaydium, VenueMeteoraDLMM, VenueWhirlpool, VenuePhoenix)
}

func (s VenueSet) Contains(v Venue) bool {
	return s.set != nil && s.set.Contains(v)
}

func (s VenueSet) Union(other VenueSet) VenueSet {
	return VenueSet{set: s.set.Union(other.set)}
}

func (s VenueSet) Exclude(other VenueSet) VenueSet {
	return VenueSet{set: s.set.Difference(other.set)}
}

func (s VenueSet) IsEmpty() bool {
	return s.set == nil || s.set.Cardinality() == 0
}

// String renders the comma-joined venue labels the quote API expects, in
// canonical order.
func (s VenueSet) String() string {
	if s.set == nil {
		return ""
	}
	labels := make([]string, 0, s.set.Cardinality())
	for _, v := range allVenues {
		if s.set.Contains(v) {
			labels = append(labels, string(v))
		}
	}
	return strings.Join(labels, ",")
}

// VenuesFromLabels parses venue labels, ignoring unknown ones.
func VenuesFromLabels(labels []string) VenueSet {
	set := mapset.NewSet[Venue]()
	for _, l := range labels {
		v := Venue(strings.TrimSpace(l))
		for _, known := range allVenues {
			if v == known {
				set.Add(v)
				break
			}
		}
	}
	return VenueSet{set: set}
}
