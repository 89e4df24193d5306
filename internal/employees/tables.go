// ABOUTME: Title tables and name pools for employee synthesis.
// ABOUTME: Titles are keyed by organization type and subtype.

package employees

import "github.com/2389/deskgen/internal/model"

var titlesByOrg = map[model.OrgType]map[string][]string{
	model.OrgFaith: {
		"church":    {"Pastor", "Associate Pastor", "Finance Director", "Administrative Assistant", "Music Director", "Youth Pastor", "Office Manager"},
		"synagogue": {"Rabbi", "Cantor", "Executive Director", "Administrative Assistant", "Education Director", "Office Manager"},
		"mosque":    {"Imam", "Administrative Director", "Education Coordinator", "Office Assistant", "Community Outreach Coordinator"},
	},
	model.OrgSchool: {
		"elementary": {"Principal", "Assistant Principal", "Secretary", "Registrar", "Finance Manager", "IT Coordinator"},
		"middle":     {"Principal", "Assistant Principal", "Dean of Students", "Secretary", "Finance Manager", "IT Coordinator"},
		"high":       {"Principal", "Assistant Principal", "Dean of Students", "Athletic Director", "Finance Manager", "IT Coordinator", "Registrar"},
	},
	model.OrgNonprofit: {
		"charity":    {"Executive Director", "Program Director", "Development Coordinator", "Administrative Assistant", "Finance Manager"},
		"foundation": {"President", "Program Officer", "Grant Coordinator", "Administrative Assistant", "Finance Director"},
		"community":  {"Director", "Program Coordinator", "Administrative Assistant", "Volunteer Coordinator", "Finance Manager"},
	},
	model.OrgChildcare: {
		"daycare":   {"Director", "Assistant Director", "Lead Teacher", "Administrative Assistant", "Finance Coordinator"},
		"preschool": {"Director", "Educational Director", "Lead Teacher", "Administrative Assistant", "Parent Coordinator"},
	},
	model.OrgCommunityEd: {
		"arts":            {"Executive Director", "Program Director", "Instructor Coordinator", "Administrative Assistant", "Marketing Coordinator"},
		"adult_education": {"Director", "Academic Coordinator", "Student Services", "Administrative Assistant", "Finance Manager"},
		"sports":          {"Athletic Director", "Program Coordinator", "Facilities Manager", "Administrative Assistant", "Registration Coordinator"},
	},
}

// genericTitles covers (type, subtype) pairs missing from titlesByOrg.
var genericTitles = []string{"Director", "Manager", "Assistant", "Coordinator", "Specialist"}

// paddingTitles extend lists shorter than the headcount.
var paddingTitles = []string{"Staff Member", "Assistant", "Coordinator", "Specialist"}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
	"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Christopher", "Karen", "Charles", "Nancy", "Daniel", "Lisa",
	"Matthew", "Betty", "Anthony", "Helen", "Mark", "Sandra", "Donald", "Donna",
	"Steven", "Carol", "Paul", "Ruth", "Andrew", "Sharon", "Joshua", "Michelle",
	"Kenneth", "Laura", "Kevin", "Sarah", "Brian", "Kimberly", "George", "Deborah",
	"Timothy", "Dorothy", "Ronald", "Lisa", "Jason", "Nancy", "Edward", "Karen",
	"Jeffrey", "Betty", "Ryan", "Helen", "Jacob", "Sandra", "Gary", "Donna",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
	"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
	"Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
}

var (
	fullPermissions    = []string{"billing", "reports", "settings", "users"}
	financePermissions = []string{"billing", "reports"}
	basicPermissions   = []string{"basic_access"}
)

// Titles returns a copy of the title list for one organization kind, padded to at
// least n entries.
func Titles(t model.OrgType, subtype string, n int) []string {
	base, ok := titlesByOrg[t][subtype]
	if !ok {
		base = genericTitles
	}
	out := append([]string(nil), base...)
	if len(out) < n {
		out = append(out, paddingTitles...)
	}
	return out
}
