// ABOUTME: Synthesizes customer organizations up to per-type targets.
// ABOUTME: Keeps names and contact emails unique across existing and new rows.

package customers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/model"
)

const idPrefix = "ZENDESK"

// Generator appends organizations until each type reaches its target or the total
// reaches Cap.
type Generator struct {
	Targets   map[model.OrgType]int
	Cap       int
	Reference time.Time
	Sizes     chance.Weighted[model.SizeCategory]
	Tiers     chance.Weighted[model.Tier]
}

func NewGenerator(targets map[model.OrgType]int, cap int, reference time.Time) *Generator {
	return &Generator{
		Targets:   targets,
		Cap:       cap,
		Reference: reference,
		Sizes:     DefaultSizes,
		Tiers:     DefaultTiers,
	}
}

// Plan returns how many new organizations of each type are still missing.
func (g *Generator) Plan(existing []model.Organization) map[model.OrgType]int {
	have := map[model.OrgType]int{}
	for _, o := range existing {
		have[o.Type]++
	}
	plan := map[model.OrgType]int{}
	for _, t := range model.OrgTypes {
		if n := g.Targets[t] - have[t]; n > 0 {
			plan[t] = n
		}
	}
	return plan
}

// Generate returns only the new organizations; existing rows are never modified.
func (g *Generator) Generate(src *chance.Source, existing []model.Organization) []model.Organization {
	names := make(map[string]bool, len(existing))
	emails := make(map[string]bool, len(existing))
	for _, o := range existing {
		names[o.Name] = true
		emails[o.ContactEmail] = true
	}

	nextID := nextNumber(existing)
	total := len(existing)
	plan := g.Plan(existing)

	var out []model.Organization
	for _, t := range model.OrgTypes {
		for i := 0; i < plan[t]; i++ {
			if total >= g.Cap {
				return out
			}
			o := g.organization(src, t, names, emails)
			o.CustomerID = fmt.Sprintf("%s%04d", idPrefix, nextID)
			out = append(out, o)
			nextID++
			total++
		}
	}
	return out
}

func (g *Generator) organization(src *chance.Source, t model.OrgType, names, emails map[string]bool) model.Organization {
	name := unique(baseName(src, t), names, func(base string, n int) string {
		return fmt.Sprintf("%s #%d", base, n)
	})

	subtype := chance.Choice(src, subtypes[t])
	size := chance.Pick(src, g.Sizes)
	b := brackets[size]
	tier := chance.Pick(src, g.Tiers)
	loc := chance.Choice(src, locations)

	first := chance.Choice(src, contactFirstNames)
	last := chance.Choice(src, contactLastNames)
	local := strings.ToLower(first) + "." + strings.ToLower(last)
	domain := emailDomain(name)
	email := unique(local+"@"+domain, emails, func(_ string, n int) string {
		return fmt.Sprintf("%s%d@%s", local, n, domain)
	})

	setup := g.setupDate(src)
	created := setup.Add(clockTime(src))
	lastLogin := g.Reference.AddDate(0, 0, -src.IntBetween(0, 50))
	if lastLogin.Before(setup) {
		lastLogin = setup
	}
	updated := g.Reference.AddDate(0, 0, -src.IntBetween(0, 5)).Add(clockTime(src))
	if updated.Before(created) {
		updated = created
	}

	support := "basic"
	if tier == model.TierPremium {
		support = "premium"
	}

	return model.Organization{
		Name:             name,
		Type:             t,
		Subtype:          subtype,
		Size:             size,
		EmployeeCount:    src.IntBetween(b.minEmployees, b.maxEmployees),
		Tier:             tier,
		MonthlyRevenue:   float64(src.IntBetween(b.minRevenue, b.maxRevenue)),
		SetupDate:        setup,
		ContactName:      contactName(t, subtype, first, last),
		ContactEmail:     email,
		ContactPhone:     fmt.Sprintf("555-%d-%d", src.IntBetween(100, 999), src.IntBetween(1000, 9999)),
		StreetAddress:    fmt.Sprintf("%d %s %s", src.IntBetween(100, 9999), chance.Choice(src, streetNames), chance.Choice(src, streetKinds)),
		City:             loc.city,
		State:            loc.state,
		ZipCode:          fmt.Sprintf("%05d", loc.baseZip+src.IntBetween(0, 99)),
		TimeZone:         loc.timeZone,
		PaymentMethods:   paymentMethods(src, size),
		IntegrationCount: src.IntBetween(1, 15),
		LastLoginDate:    lastLogin,
		SupportTier:      support,
		CreatedAt:        created,
		UpdatedAt:        updated,
	}
}

// setupDate is never later than the day before the reference date.
func (g *Generator) setupDate(src *chance.Source) time.Time {
	year := src.IntBetween(2015, g.Reference.Year())
	d := time.Date(year, time.Month(src.IntBetween(1, 12)), src.IntBetween(1, 28), 0, 0, 0, 0, time.UTC)
	if limit := g.Reference.AddDate(0, 0, -1); d.After(limit) {
		d = time.Date(limit.Year(), limit.Month(), limit.Day(), 0, 0, 0, 0, time.UTC)
	}
	return d
}

// clockTime is an office-hours offset into a day, whole minutes.
func clockTime(src *chance.Source) time.Duration {
	return time.Duration(src.IntBetween(8, 17))*time.Hour + time.Duration(src.IntBetween(0, 59))*time.Minute
}

func baseName(src *chance.Source, t model.OrgType) string {
	switch t {
	case model.OrgFaith:
		return chance.Choice(src, churchNames) + " " + chance.Choice(src, churchSuffixes)
	case model.OrgSchool:
		return chance.Choice(src, schoolNames) + " " + chance.Choice(src, schoolSuffixes)
	default:
		return chance.Choice(src, centerPrefixes) + " " + centerLabels[t] + " Center"
	}
}

func contactName(t model.OrgType, subtype, first, last string) string {
	full := first + " " + last
	switch {
	case t == model.OrgFaith && subtype == "church":
		return "Rev. " + full
	case t == model.OrgFaith && subtype == "synagogue":
		return "Rabbi " + full
	case t == model.OrgFaith && subtype == "mosque":
		return "Imam " + full
	case t == model.OrgSchool:
		return "Principal " + full
	}
	return full
}

func emailDomain(orgName string) string {
	d := strings.NewReplacer(" ", "", "#", "", "'", "").Replace(strings.ToLower(orgName))
	return d + ".org"
}

func paymentMethods(src *chance.Source, size model.SizeCategory) []string {
	methods := []string{"online"}
	if src.Chance(0.6) {
		methods = append(methods, "mobile")
	}
	if src.Chance(0.4) {
		methods = append(methods, "text")
	}
	if size == model.SizeLarge && src.Chance(0.3) {
		methods = append(methods, "pos")
	}
	return methods
}

// unique claims candidate in used, retrying with suffix(candidate, n) for n = 1, 2, ...
func unique(candidate string, used map[string]bool, suffix func(string, int) string) string {
	v := candidate
	for n := 1; used[v]; n++ {
		v = suffix(candidate, n)
	}
	used[v] = true
	return v
}

// nextNumber continues numbering after the highest existing id, or after the row
// count when ids are not numeric.
func nextNumber(existing []model.Organization) int {
	highest := len(existing)
	for _, o := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(o.CustomerID, idPrefix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}
