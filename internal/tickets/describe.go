// ABOUTME: Renders ticket descriptions from bucketed templates.
// ABOUTME: Placeholder values are generated lazily, one draw per occurrence.

package tickets

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/2389/deskgen/internal/chance"
	apperrors "github.com/2389/deskgen/internal/errors"
	"github.com/2389/deskgen/internal/model"
)

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

var titleCase = cases.Title(language.English)

// describer carries the context of one ticket while its template is filled.
type describer struct {
	src       *chance.Source
	org       model.Organization
	requester model.Employee
	category  model.Category
}

func issueText(c model.Category) string {
	return strings.ToLower(strings.ReplaceAll(string(c), "_", " "))
}

func fromOrgType(src *chance.Source, pools map[model.OrgType][]string, t model.OrgType) string {
	list, ok := pools[t]
	if !ok {
		list = pools[model.OrgNonprofit]
	}
	return chance.Choice(src, list)
}

func (d *describer) activity() string { return fromOrgType(d.src, orgActivities, d.org.Type) }
func (d *describer) seasonal() string { return fromOrgType(d.src, seasonalContexts, d.org.Type) }
func (d *describer) process() string  { return fromOrgType(d.src, businessProcesses, d.org.Type) }

func (d *describer) scale() string {
	list, ok := impactScales[d.org.Size]
	if !ok {
		list = impactScales[model.SizeMedium]
	}
	return chance.Choice(d.src, list)
}

func (d *describer) pick(items ...string) string { return chance.Choice(d.src, items) }

func (d *describer) sizeTitle() string { return titleCase.String(string(d.org.Size)) }

func (d *describer) requesterRole() string {
	if s, ok := requesterContexts[d.requester.Role]; ok {
		return s
	}
	return "team member"
}

func (d *describer) orgDescription() string {
	size := d.sizeTitle()
	switch d.org.Type {
	case model.OrgFaith:
		switch d.org.Subtype {
		case "church":
			return fmt.Sprintf("%s congregation with active %s", size, strings.ToLower(d.seasonal()))
		case "synagogue":
			return fmt.Sprintf("%s Jewish community focused on %s", size, d.activity())
		case "mosque":
			return fmt.Sprintf("%s Islamic center managing %s", size, d.activity())
		}
	case model.OrgSchool:
		switch d.org.Subtype {
		case "elementary":
			return fmt.Sprintf("%s elementary school handling %s", size, d.process())
		case "middle":
			return fmt.Sprintf("%s middle school with %s", size, d.scale())
		case "high":
			return fmt.Sprintf("%s high school managing %s", size, d.process())
		}
	case model.OrgNonprofit:
		return fmt.Sprintf("%s nonprofit organization focused on %s", size, d.activity())
	case model.OrgChildcare:
		return fmt.Sprintf("%s childcare center with %s", size, d.scale())
	case model.OrgCommunityEd:
		return fmt.Sprintf("%s community education program offering %s", size, d.process())
	}
	return size + " organization"
}

var placeholders = map[string]func(d *describer) string{
	"issue":                     func(d *describer) string { return issueText(d.category) },
	"org_activity":              (*describer).activity,
	"seasonal_context":          (*describer).seasonal,
	"impact_scale":              (*describer).scale,
	"troubleshooting_attempted": func(d *describer) string { return chance.Choice(d.src, troubleshootingSteps) },
	"timeframe":                 func(d *describer) string { return chance.Choice(d.src, timeframes) },
	"workflow_area":             (*describer).process,
	"business_process":          (*describer).process,
	"org_description":           (*describer).orgDescription,
	"requester_role":            (*describer).requesterRole,
	"time_greeting":             func(d *describer) string { return d.pick("morning", "afternoon", "day") },
	"impact_description": func(d *describer) string {
		return fmt.Sprintf("This affects %s in our %s", d.scale(), d.activity())
	},
	"additional_context": func(d *describer) string { return "We noticed this during our " + d.process() },
	"background_context": func(d *describer) string {
		return fmt.Sprintf("We're a %s that relies heavily on this functionality", d.orgDescription())
	},
	"specific_symptoms": func(d *describer) string {
		return "Users report issues when trying to " + strings.TrimRight(d.process(), "s")
	},
	"environment_details": func(d *describer) string {
		return fmt.Sprintf("Our %s %s organization using %s systems", d.org.Size, d.org.Type, d.pick("Windows", "Mac", "mixed platform"))
	},
	"affected_users": (*describer).scale,
	"org_structure": func(d *describer) string {
		return fmt.Sprintf("%s with %s operations", d.org.Type, d.pick("centralized", "distributed", "hybrid"))
	},
	"error_details":    func(d *describer) string { return "Error appears during " + d.process() },
	"goal_description": func(d *describer) string { return "streamline our " + d.activity() },
	"team_description": func(d *describer) string {
		return fmt.Sprintf("%s including %ss", d.scale(), d.requesterRole())
	},
	"timeline_context": func(d *describer) string {
		return "Planning to launch during " + strings.ToLower(d.seasonal())
	},
	"requirements_context": func(d *describer) string {
		return fmt.Sprintf("Support for %s with %s", d.process(), d.scale())
	},
	"technical_context": func(d *describer) string {
		return d.pick("basic", "intermediate", "advanced") + " technical capabilities"
	},
	"org_specifics": func(d *describer) string { return "We're a " + d.orgDescription() },
	"team_size":     func(d *describer) string { return d.pick("5-8", "10-12", "15-20", "20+") },
	"team_type": func(d *describer) string {
		return d.pick("staff members", "volunteers", "administrators", "coordinators")
	},
	"staff_description": func(d *describer) string {
		return fmt.Sprintf("%s across %s", d.scale(), d.pick("multiple departments", "different locations", "various roles"))
	},
	"department":    func(d *describer) string { return d.pick("finance", "administration", "operations", "outreach") },
	"learning_goal": func(d *describer) string { return "effectively manage " + d.process() },
	"background":    func(d *describer) string { return "I'm responsible for " + d.activity() },
	"objective":     func(d *describer) string { return "optimize our " + d.process() },
	"responsibilities": func(d *describer) string {
		return fmt.Sprintf("%s and related %s", d.activity(), d.pick("reporting", "coordination", "management"))
	},
	"tech_specs": func(d *describer) string {
		return "Using " + d.pick("REST API", "webhook integration", "batch sync", "real-time connection")
	},
	"error_context": func(d *describer) string { return "Error occurs during " + d.process() },
	"integration_setup": func(d *describer) string {
		return d.pick("QuickBooks Online", "Salesforce", "custom CRM", "accounting software") + " integration"
	},
	"system_details": func(d *describer) string {
		return fmt.Sprintf("%s organization with %s infrastructure", d.sizeTitle(), d.pick("cloud-based", "on-premise", "hybrid"))
	},
	"business_workflow":   (*describer).process,
	"operational_process": (*describer).activity,
	"business_impact":     func(d *describer) string { return "our ability to " + d.process() },
	"account_context": func(d *describer) string {
		return fmt.Sprintf("We're a %s %s organization", d.org.Size, d.org.Type)
	},
	"billing_context": func(d *describer) string {
		return d.pick("monthly charges", "annual subscription", "usage fees", "service costs")
	},
	"billing_aspect": func(d *describer) string {
		return d.pick("subscription tier", "usage calculations", "discount application", "payment timing")
	},
	"expectation_context": func(d *describer) string {
		return "our " + d.pick("contract terms", "initial agreement", "previous billing", "quoted pricing")
	},
	"billing_period": func(d *describer) string {
		return d.pick("this month", "last quarter", "annual billing", "recent charges")
	},
	"benefit_description":  func(d *describer) string { return "better serve our " + d.scale() },
	"use_case_description": func(d *describer) string { return fmt.Sprintf("We need to %s more efficiently", d.process()) },
	"improvement_area":     func(d *describer) string { return d.activity() + " management" },
	"capability_need":      func(d *describer) string { return "support our " + strings.ToLower(d.seasonal()) },
	"enablement_goal":      func(d *describer) string { return "expand our " + d.activity() },
	"support_need":         func(d *describer) string { return fmt.Sprintf("growing %s demands", d.process()) },
	"reproduction_steps": func(d *describer) string {
		return fmt.Sprintf("Occurs when accessing %s during %s", d.process(), strings.ToLower(d.seasonal()))
	},
	"behavior_description": func(d *describer) string {
		return fmt.Sprintf("Expected normal %s, but system %s", d.process(), d.pick("freezes", "errors", "crashes", "times out"))
	},
	"environment_info": func(d *describer) string {
		return fmt.Sprintf("%s %s environment with %s", d.sizeTitle(), d.org.Type, d.scale())
	},
	"trigger_condition":    func(d *describer) string { return "users attempt " + d.process() },
	"user_goal":            func(d *describer) string { return "completing " + d.process() },
	"customer_interaction": func(d *describer) string { return "our " + d.scale() },
}

// fill substitutes every placeholder in pattern. An unknown placeholder yields a
// template_field error naming it.
func (d *describer) fill(pattern string) (string, error) {
	var err error
	out := placeholderRe.ReplaceAllStringFunc(pattern, func(m string) string {
		key := m[1 : len(m)-1]
		gen, ok := placeholders[key]
		if !ok {
			if err == nil {
				err = apperrors.New(apperrors.ErrTemplateField, "unknown template placeholder").WithField(key)
			}
			return m
		}
		return gen(d)
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// selectBucket picks the pattern list for a ticket. Urgent tickets use the urgent
// bucket; admins, directors and large organizations get detailed patterns.
func selectBucket(set TemplateSet, priority model.Priority, role model.Role, size model.SizeCategory) []string {
	name := bucketNormal
	switch {
	case priority == model.PriorityUrgent:
		name = bucketUrgent
	case role == model.RoleAdmin || role == model.RoleDirector || size == model.SizeLarge:
		if _, ok := set.get(bucketDetailed); ok {
			name = bucketDetailed
		}
	}
	if p, ok := set.get(name); ok {
		return p
	}
	return set[0].Patterns
}

// describe renders a description for one ticket, falling back to a generic
// sentence when the category has no templates or a template cannot be filled.
func describe(src *chance.Source, set map[model.Category]TemplateSet, org model.Organization, requester model.Employee,
	category model.Category, priority model.Priority) (string, error) {
	d := &describer{src: src, org: org, requester: requester, category: category}

	ts, ok := set[category]
	if !ok || len(ts) == 0 {
		return fmt.Sprintf("We need assistance with %s. This is affecting our %s and we'd appreciate your help resolving it.",
			issueText(category), d.activity()), nil
	}

	pattern := chance.Choice(src, selectBucket(ts, priority, requester.Role, org.Size))
	text, err := d.fill(pattern)
	if err != nil {
		return fmt.Sprintf("We need assistance with %s. This is impacting our %s and we'd appreciate your help.",
			issueText(category), d.activity()), err
	}
	return text, nil
}
