// ABOUTME: Tests for roster synthesis and the employees stage.
// ABOUTME: Covers headcounts, the single primary contact, hire dates and title rules.

package employees

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/config"
	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/model"
	"github.com/2389/deskgen/internal/pipeline"
)

var reference = time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)

func orgs() []model.Organization {
	return []model.Organization{
		{CustomerID: "ZENDESK0001", Name: "St. Mary Church", Type: model.OrgFaith, Subtype: "church", Size: model.SizeSmall, SetupDate: time.Date(2016, 3, 4, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "ZENDESK0002", Name: "Lincoln Academy", Type: model.OrgSchool, Subtype: "high", Size: model.SizeMedium, SetupDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "ZENDESK0003", Name: "Metro Nonprofit Center", Type: model.OrgNonprofit, Subtype: "unknown", Size: model.SizeLarge, SetupDate: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)},
		// same name as the first, so emails collide
		{CustomerID: "ZENDESK0004", Name: "St. Mary Church", Type: model.OrgFaith, Subtype: "mosque", Size: model.SizeLarge, SetupDate: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestGenerateRoster(t *testing.T) {
	emps := NewGenerator(reference).Generate(chance.New(5), orgs())

	byOrg := map[string][]model.Employee{}
	setup := map[string]time.Time{}
	for _, o := range orgs() {
		setup[o.CustomerID] = o.SetupDate
	}
	emails := map[string]bool{}
	for i, e := range emps {
		byOrg[e.CustomerID] = append(byOrg[e.CustomerID], e)
		assert.False(t, emails[e.Email], "duplicate email %s", e.Email)
		emails[e.Email] = true

		assert.False(t, e.HireDate.Before(setup[e.CustomerID]), "hire before setup: %+v", e)
		assert.False(t, e.HireDate.After(reference))
		assert.False(t, e.LastLoginDate.Before(e.HireDate))
		assert.Equal(t, e.HireDate, e.CreatedAt)
		assert.NotEmpty(t, e.Permissions)
		if i == 0 {
			assert.Equal(t, "EMP0001", e.EmployeeID)
		}
	}

	assert.Contains(t, []int{3, 4}, len(byOrg["ZENDESK0001"]))
	assert.Contains(t, []int{4, 5}, len(byOrg["ZENDESK0002"]))
	assert.Len(t, byOrg["ZENDESK0003"], 5)
	assert.Len(t, byOrg["ZENDESK0004"], 5)

	for id, staff := range byOrg {
		primaries := 0
		for _, e := range staff {
			if e.IsPrimaryContact {
				primaries++
			}
		}
		assert.Equal(t, 1, primaries, id)
		assert.True(t, staff[0].IsPrimaryContact, id)
		assert.Equal(t, fullPermissions, staff[0].Permissions)
	}
}

func TestTitlesPadAndFallBack(t *testing.T) {
	assert.Equal(t, genericTitles, Titles(model.OrgNonprofit, "unknown", 5))

	mosque := Titles(model.OrgFaith, "mosque", 6)
	assert.Len(t, mosque, 9)
	// padding works on a copy
	assert.Len(t, titlesByOrg[model.OrgFaith]["mosque"], 5)

	staff := Titles(model.OrgFaith, "church", 5)
	staff[0] = "changed"
	assert.Equal(t, "Pastor", titlesByOrg[model.OrgFaith]["church"][0])
}

func TestDepartmentAndRole(t *testing.T) {
	tests := []struct {
		title      string
		department string
		role       model.Role
	}{
		{"Youth Pastor", "Leadership", model.RoleAdmin},
		{"Finance Director", "Finance", model.RoleAdmin},
		{"Finance Manager", "Finance", model.RoleFinance},
		{"Administrative Assistant", "Administration", ""},
		{"Program Officer", "Programs", ""},
		{"Educational Director", "Programs", model.RoleAdmin},
		{"Facilities Manager", "Operations", ""},
		{"President", "Operations", model.RoleAdmin},
	}
	src := chance.New(1)
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.department, Department(tt.title))
			role := Role(src, tt.title)
			if tt.role == "" {
				assert.Contains(t, otherRoles, role)
			} else {
				assert.Equal(t, tt.role, role)
			}
		})
	}
}

func TestPermissions(t *testing.T) {
	assert.Equal(t, []string{"billing", "reports", "settings", "users"}, Permissions(model.RoleTeacher, true))
	assert.Equal(t, []string{"billing", "reports"}, Permissions(model.RoleFinance, false))
	assert.Equal(t, []string{"basic_access"}, Permissions(model.RoleVolunteer, false))
}

func TestHireDateForSetupOnReference(t *testing.T) {
	g := NewGenerator(reference)
	assert.Equal(t, reference, g.hireDate(chance.New(1), reference))
}

func TestStageRequiresCustomers(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Seed = 3
	env, err := pipeline.NewEnv(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)

	st, ok := pipeline.Get(StageName)
	require.True(t, ok)

	_, err = st.Run(context.Background(), env)
	assert.ErrorIs(t, err, dataset.ErrMissingInput)

	require.NoError(t, dataset.WriteOrganizations(env.Paths.Customers(), orgs()))
	res, err := st.Run(context.Background(), env)
	require.NoError(t, err)

	written, err := dataset.ReadEmployees(env.Paths.Employees())
	require.NoError(t, err)
	assert.Equal(t, len(written), res.Records["employees"])
	assert.GreaterOrEqual(t, len(written), 17)
}
