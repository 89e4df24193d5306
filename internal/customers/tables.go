// ABOUTME: Lookup tables for organization synthesis.
// ABOUTME: Names, subtypes, size brackets and US locations.

package customers

import (
	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/model"
)

var subtypes = map[model.OrgType][]string{
	model.OrgFaith:       {"church", "synagogue", "mosque"},
	model.OrgSchool:      {"elementary", "middle", "high"},
	model.OrgNonprofit:   {"charity", "foundation", "community"},
	model.OrgChildcare:   {"daycare", "preschool"},
	model.OrgCommunityEd: {"arts", "adult_education", "sports"},
}

var churchNames = []string{
	"St. Mary", "First Baptist", "Grace Community", "Hope Methodist", "Trinity Lutheran",
	"Calvary Baptist", "New Life", "Faith Community", "Emmanuel Baptist", "Christ the King",
	"St. Paul", "Cornerstone", "Living Water", "Mount Olive", "Riverside", "Crossroads",
	"Harvest", "Victory", "Blessed Sacrament", "Good Shepherd",
}

var churchSuffixes = []string{
	"Church", "Community Church", "Baptist Church", "Methodist Church", "Lutheran Church",
	"Presbyterian Church", "Catholic Church", "Episcopal Church",
}

var schoolNames = []string{
	"Lincoln", "Washington", "Roosevelt", "Jefferson", "Madison", "Jackson", "Adams",
	"Wilson", "Kennedy", "Franklin", "Oakwood", "Riverside", "Hillcrest", "Sunset",
	"Valley View", "Pine Ridge", "Cedar Creek", "Maple Grove", "Spring Valley", "North Star",
}

var schoolSuffixes = []string{"Elementary School", "Middle School", "High School", "Elementary", "Academy"}

var centerPrefixes = []string{"Community", "City", "Metro", "Valley", "County"}

var centerLabels = map[model.OrgType]string{
	model.OrgNonprofit:   "Nonprofit",
	model.OrgChildcare:   "Childcare",
	model.OrgCommunityEd: "Community_Ed",
}

var contactFirstNames = []string{"John", "Sarah", "Michael", "Jennifer", "David", "Lisa", "Robert", "Mary", "William", "Patricia"}
var contactLastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}

var streetNames = []string{"Main", "Oak", "Park", "Church", "School"}
var streetKinds = []string{"St", "Ave", "Blvd", "Dr"}

type bracket struct {
	minEmployees, maxEmployees int
	minRevenue, maxRevenue     int
}

var brackets = map[model.SizeCategory]bracket{
	model.SizeSmall:  {5, 50, 400, 2000},
	model.SizeMedium: {51, 150, 2000, 8000},
	model.SizeLarge:  {151, 500, 8000, 25000},
}

// DefaultSizes is the small/medium/large mix.
var DefaultSizes = chance.W(
	chance.O(model.SizeSmall, 60),
	chance.O(model.SizeMedium, 30),
	chance.O(model.SizeLarge, 10),
)

// DefaultTiers is the subscription tier mix.
var DefaultTiers = chance.W(
	chance.O(model.TierBasic, 40),
	chance.O(model.TierStandard, 40),
	chance.O(model.TierPremium, 20),
)

type location struct {
	city, state string
	baseZip     int
	timeZone    string
}

var locations = []location{
	{"New York", "NY", 10001, "America/New_York"},
	{"Los Angeles", "CA", 90001, "America/Los_Angeles"},
	{"Chicago", "IL", 60601, "America/Chicago"},
	{"Houston", "TX", 77001, "America/Chicago"},
	{"Phoenix", "AZ", 85001, "America/Phoenix"},
	{"Philadelphia", "PA", 19101, "America/New_York"},
	{"San Antonio", "TX", 78201, "America/Chicago"},
	{"San Diego", "CA", 92101, "America/Los_Angeles"},
	{"Dallas", "TX", 75201, "America/Chicago"},
	{"San Jose", "CA", 95101, "America/Los_Angeles"},
	{"Austin", "TX", 73301, "America/Chicago"},
	{"Jacksonville", "FL", 32201, "America/New_York"},
	{"Fort Worth", "TX", 76101, "America/Chicago"},
	{"Columbus", "OH", 43201, "America/New_York"},
	{"Charlotte", "NC", 28201, "America/New_York"},
	{"San Francisco", "CA", 94101, "America/Los_Angeles"},
	{"Indianapolis", "IN", 46201, "America/New_York"},
	{"Seattle", "WA", 98101, "America/Los_Angeles"},
	{"Denver", "CO", 80201, "America/Denver"},
	{"Boston", "MA", 2101, "America/New_York"},
}
