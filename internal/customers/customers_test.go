// ABOUTME: Tests for organization synthesis and the customers stage.
// ABOUTME: Covers targets, the cap, uniqueness and re-running against existing files.

package customers

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
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

func smallTargets() map[model.OrgType]int {
	return map[model.OrgType]int{
		model.OrgFaith:       30,
		model.OrgSchool:      10,
		model.OrgNonprofit:   12,
		model.OrgChildcare:   3,
		model.OrgCommunityEd: 2,
	}
}

func TestGenerateMeetsTargets(t *testing.T) {
	g := NewGenerator(smallTargets(), 1000, reference)
	orgs := g.Generate(chance.New(1), nil)
	require.Len(t, orgs, 57)

	counts := map[model.OrgType]int{}
	for _, o := range orgs {
		counts[o.Type]++
	}
	assert.Equal(t, smallTargets(), counts)
	assert.Equal(t, "ZENDESK0001", orgs[0].CustomerID)
	assert.Equal(t, "ZENDESK0057", orgs[56].CustomerID)
}

func TestGeneratedFieldsStayInRange(t *testing.T) {
	g := NewGenerator(smallTargets(), 1000, reference)
	for _, o := range g.Generate(chance.New(7), nil) {
		b := brackets[o.Size]
		assert.GreaterOrEqual(t, o.EmployeeCount, b.minEmployees)
		assert.LessOrEqual(t, o.EmployeeCount, b.maxEmployees)
		assert.GreaterOrEqual(t, o.MonthlyRevenue, float64(b.minRevenue))
		assert.LessOrEqual(t, o.MonthlyRevenue, float64(b.maxRevenue))
		assert.Contains(t, subtypes[o.Type], o.Subtype)

		assert.Len(t, o.ZipCode, 5)
		assert.Equal(t, "online", o.PaymentMethods[0])
		if o.Size != model.SizeLarge {
			assert.NotContains(t, o.PaymentMethods, "pos")
		}

		assert.True(t, o.SetupDate.Before(reference), o.SetupDate)
		assert.LessOrEqual(t, o.SetupDate.Day(), 28)
		assert.False(t, o.CreatedAt.Before(o.SetupDate))
		assert.False(t, o.UpdatedAt.Before(o.CreatedAt))
		assert.False(t, o.LastLoginDate.Before(o.SetupDate))

		if o.Tier == model.TierPremium {
			assert.Equal(t, "premium", o.SupportTier)
		} else {
			assert.Equal(t, "basic", o.SupportTier)
		}
	}
}

func TestNamesAndEmailsUnique(t *testing.T) {
	g := NewGenerator(smallTargets(), 1000, reference)
	orgs := g.Generate(chance.New(3), nil)

	names := map[string]bool{}
	emails := map[string]bool{}
	suffixed := false
	for _, o := range orgs {
		assert.False(t, names[o.Name], "duplicate name %q", o.Name)
		assert.False(t, emails[o.ContactEmail], "duplicate email %q", o.ContactEmail)
		names[o.Name] = true
		emails[o.ContactEmail] = true
		if strings.Contains(o.Name, " #") {
			suffixed = true
		}
	}
	// only five nonprofit names exist, so twelve nonprofits must collide
	assert.True(t, suffixed)
}

func TestContactTitles(t *testing.T) {
	assert.Equal(t, "Rev. John Smith", contactName(model.OrgFaith, "church", "John", "Smith"))
	assert.Equal(t, "Rabbi John Smith", contactName(model.OrgFaith, "synagogue", "John", "Smith"))
	assert.Equal(t, "Imam John Smith", contactName(model.OrgFaith, "mosque", "John", "Smith"))
	assert.Equal(t, "Principal John Smith", contactName(model.OrgSchool, "high", "John", "Smith"))
	assert.Equal(t, "John Smith", contactName(model.OrgChildcare, "daycare", "John", "Smith"))
	assert.Equal(t, "st.marycatholicchurch2.org", emailDomain("St. Mary Catholic Church #2"))
}

func TestCapCountsExistingRows(t *testing.T) {
	existing := []model.Organization{
		{CustomerID: "ZENDESK0001", Type: model.OrgFaith, Name: "a"},
		{CustomerID: "ZENDESK0009", Type: model.OrgFaith, Name: "b"},
	}
	g := NewGenerator(smallTargets(), 10, reference)
	orgs := g.Generate(chance.New(1), existing)
	require.Len(t, orgs, 8)
	assert.Equal(t, "ZENDESK0010", orgs[0].CustomerID)
}

func TestPlanSubtractsExisting(t *testing.T) {
	existing := []model.Organization{{Type: model.OrgChildcare}, {Type: model.OrgChildcare}, {Type: model.OrgChildcare}, {Type: model.OrgChildcare}}
	plan := NewGenerator(smallTargets(), 1000, reference).Plan(existing)
	assert.Equal(t, 30, plan[model.OrgFaith])
	assert.NotContains(t, plan, model.OrgChildcare)
}

func testEnv(t *testing.T) *pipeline.Env {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Seed = 11
	cfg.Customers.Targets = map[string]int{"faith": 6, "school": 3, "nonprofit": 2, "childcare": 1, "community_ed": 1}
	env, err := pipeline.NewEnv(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	return env
}

func TestStageStartsFreshThenTopsUp(t *testing.T) {
	env := testEnv(t)
	st, ok := pipeline.Get(StageName)
	require.True(t, ok)

	res, err := st.Run(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 13, res.Records["organizations"])

	// a second run finds every target met
	res, err = st.Run(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Records["organizations"])

	orgs, err := dataset.ReadOrganizations(env.Paths.Customers())
	require.NoError(t, err)
	assert.Len(t, orgs, 13)

	// raising one target only adds the difference
	env.Config.Customers.Targets["school"] = 5
	res, err = st.Run(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Records["organizations"])

	orgs, err = dataset.ReadOrganizations(env.Paths.Customers())
	require.NoError(t, err)
	require.Len(t, orgs, 15)
	assert.Equal(t, "ZENDESK0015", orgs[14].CustomerID)
}

func TestStageRejectsMalformedExisting(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.Config.DataDir, dataset.CustomersFile),
		[]byte("customer_id,employee_count\nZENDESK0001,many\n"), 0o644))

	st, _ := pipeline.Get(StageName)
	_, err := st.Run(context.Background(), env)
	assert.Error(t, err)
}
