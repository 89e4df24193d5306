// ABOUTME: Synthesizes the staff roster of every organization.
// ABOUTME: Titles drive department, access role and permissions.

package employees

import (
	"fmt"
	"strings"
	"time"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/classify"
	"github.com/2389/deskgen/internal/model"
)

// maxHireOffsetDays bounds how long after setup a hire can happen.
const maxHireOffsetDays = 2000

var departments = []struct {
	name    string
	matcher *classify.Matcher
}{
	{"Leadership", classify.NewMatcher("pastor", "rabbi", "imam", "principal")},
	{"Finance", classify.NewMatcher("finance", "accounting")},
	{"Administration", classify.NewMatcher("admin", "secretary", "office")},
	{"Programs", classify.NewMatcher("program", "education", "academic")},
}

var (
	adminTitles   = classify.NewMatcher("director", "principal", "pastor", "rabbi", "imam", "president")
	financeTitles = classify.NewMatcher("finance", "accounting")
	otherRoles    = []model.Role{model.RoleVolunteer, model.RoleDirector, model.RoleTeacher}
)

type Generator struct {
	Reference time.Time
}

func NewGenerator(reference time.Time) *Generator {
	return &Generator{Reference: reference}
}

// Headcount is the number of employees generated for a size category.
func Headcount(src *chance.Source, size model.SizeCategory) int {
	switch size {
	case model.SizeSmall:
		return src.IntBetween(3, 4)
	case model.SizeMedium:
		return src.IntBetween(4, 5)
	default:
		return 5
	}
}

// Generate builds the full roster for orgs. Employee emails are unique across the
// whole result.
func (g *Generator) Generate(src *chance.Source, orgs []model.Organization) []model.Employee {
	used := map[string]bool{}
	var out []model.Employee
	for _, o := range orgs {
		n := Headcount(src, o.Size)
		titles := chance.Sample(src, Titles(o.Type, o.Subtype, n), n)
		domain := emailDomain(o.Name)

		for i := 0; i < n; i++ {
			title := chance.Choice(src, []string{"Assistant", "Coordinator", "Staff Member"})
			if i < len(titles) {
				title = titles[i]
			}
			e := g.employee(src, o, title, i == 0)
			e.EmployeeID = fmt.Sprintf("EMP%04d", len(out)+1)
			e.Email = uniqueEmail(strings.ToLower(e.FirstName)+"."+strings.ToLower(e.LastName), domain, used)
			out = append(out, e)
		}
	}
	return out
}

func (g *Generator) employee(src *chance.Source, o model.Organization, title string, primary bool) model.Employee {
	hire := g.hireDate(src, o.SetupDate)
	role := Role(src, title)

	trainedOdds := 0.75
	if g.Reference.Sub(hire) < 90*24*time.Hour {
		trainedOdds = 0.5
	}

	lastLogin := g.Reference.AddDate(0, 0, -src.IntBetween(1, 30))
	if lastLogin.Before(hire) {
		lastLogin = hire
	}

	return model.Employee{
		CustomerID:        o.CustomerID,
		FirstName:         chance.Choice(src, firstNames),
		LastName:          chance.Choice(src, lastNames),
		Phone:             fmt.Sprintf("555-%d-%d", src.IntBetween(100, 999), src.IntBetween(1000, 9999)),
		Title:             title,
		Role:              role,
		Department:        Department(title),
		HireDate:          hire,
		IsPrimaryContact:  primary,
		IsActive:          src.Chance(0.95),
		LastLoginDate:     lastLogin,
		TrainingCompleted: src.Chance(trainedOdds),
		Permissions:       Permissions(role, primary),
		CreatedAt:         hire,
		UpdatedAt:         g.Reference.Add(14*time.Hour + 30*time.Minute),
	}
}

// hireDate falls between setup and the reference date, at most maxHireOffsetDays
// after setup.
func (g *Generator) hireDate(src *chance.Source, setup time.Time) time.Time {
	days := int(g.Reference.Sub(setup).Hours() / 24)
	if days <= 0 {
		return setup
	}
	return setup.AddDate(0, 0, src.IntBetween(0, min(days, maxHireOffsetDays)))
}

// Department classifies a job title; unmatched titles land in Operations.
func Department(title string) string {
	for _, d := range departments {
		if d.matcher.Match(title) {
			return d.name
		}
	}
	return "Operations"
}

// Role maps a title to an access role. Titles with no clear role get a random one.
func Role(src *chance.Source, title string) model.Role {
	switch {
	case adminTitles.Match(title):
		return model.RoleAdmin
	case financeTitles.Match(title):
		return model.RoleFinance
	}
	return chance.Choice(src, otherRoles)
}

func Permissions(role model.Role, primary bool) []string {
	var p []string
	switch {
	case primary || role == model.RoleAdmin:
		p = fullPermissions
	case role == model.RoleFinance:
		p = financePermissions
	default:
		p = basicPermissions
	}
	return append([]string(nil), p...)
}

func emailDomain(orgName string) string {
	return strings.NewReplacer(" ", "", "'", "", "#", "", ".", "").Replace(strings.ToLower(orgName)) + ".org"
}

func uniqueEmail(local, domain string, used map[string]bool) string {
	email := local + "@" + domain
	for n := 1; used[email]; n++ {
		email = fmt.Sprintf("%s%d@%s", local, n, domain)
	}
	used[email] = true
	return email
}
