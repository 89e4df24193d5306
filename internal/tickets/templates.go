// ABOUTME: Description templates grouped into buckets per ticket category.
// ABOUTME: Placeholders in braces are filled by the description context.

package tickets

import "github.com/2389/deskgen/internal/model"

const (
	bucketUrgent   = "urgent"
	bucketNormal   = "normal"
	bucketDetailed = "detailed"
)

// Bucket is a named group of description patterns.
type Bucket struct {
	Name     string
	Patterns []string
}

// TemplateSet keeps buckets in declaration order; the first bucket is the fallback.
type TemplateSet []Bucket

func (ts TemplateSet) get(name string) ([]string, bool) {
	for _, b := range ts {
		if b.Name == name {
			return b.Patterns, true
		}
	}
	return nil, false
}

// DefaultTemplates returns the stock description patterns.
func DefaultTemplates() map[model.Category]TemplateSet {
	return templates
}

var templates = map[model.Category]TemplateSet{
	model.CategoryPaymentProcessing: {
		{bucketUrgent, []string{
			"URGENT: {issue} - This is severely impacting our {org_activity} and we need immediate assistance.",
			"Critical issue with {issue}. We have {impact_scale} affected and need emergency support.",
			"Emergency: {issue} is preventing all donation processing. Please prioritize this ticket.",
			"PRIORITY: {issue} - Our {seasonal_context} is at risk. Immediate help needed.",
		}},
		{bucketNormal, []string{
			"We're experiencing {issue} which started {timeframe}. This is affecting our {workflow_area}.",
			"Hello Support, {issue} and we need guidance on resolution. {additional_context}",
			"Support needed for {issue}. We've attempted {troubleshooting_attempted} but need expert help.",
			"Hi team, {issue} is causing delays in our {business_process}. Can you assist?",
			"Good {time_greeting}, we have {issue} that needs attention. {impact_description}",
		}},
		{bucketDetailed, []string{
			"We are encountering {issue} in our system. Background: {background_context}. The issue manifests as {specific_symptoms}. We have tried {troubleshooting_attempted} without success. Please advise on next steps.",
			"Reporting {issue} that began {timeframe}. Environment details: {environment_details}. Impact assessment: {impact_description}. Looking for both immediate resolution and preventive measures.",
			"Technical issue report: {issue}. This affects {affected_users} users across our {org_structure}. Error patterns: {error_details}. Please provide detailed troubleshooting steps.",
		}},
	},
	model.CategorySetup: {
		{"getting_started", []string{
			"New to your platform and need help with {issue}. We're a {org_description} looking to {goal_description}.",
			"Just signed up and working on {issue}. Our team includes {team_description} and we want to ensure proper setup.",
			"Beginning our implementation and need guidance on {issue}. Timeline: {timeline_context}.",
		}},
		{"configuration", []string{
			"Configuration assistance needed for {issue}. Our specific requirements: {requirements_context}.",
			"Setup help required: {issue}. We have {technical_context} and need customization guidance.",
			"Implementation support for {issue}. Organization specifics: {org_specifics}.",
		}},
	},
	model.CategoryTraining: {
		{"team_training", []string{
			"Training request for {issue}. We have {team_size} {team_type} who need to learn the system.",
			"Educational support needed: {issue}. Our staff includes {staff_description} with varying technical comfort levels.",
			"Workshop request for {issue}. We'd like to schedule training for our {department} team.",
		}},
		{"individual_help", []string{
			"Personal assistance with {issue}. I'm {requester_role} and need to understand {learning_goal}.",
			"One-on-one help needed for {issue}. My background: {background} and I'm trying to {objective}.",
			"Individual training on {issue}. I handle {responsibilities} and need to get up to speed quickly.",
		}},
	},
	model.CategoryIntegration: {
		{"technical", []string{
			"Integration issue: {issue}. Technical details: {tech_specs}. Error logs: {error_context}.",
			"API/sync problem with {issue}. Our setup: {integration_setup}. Need technical assistance.",
			"Connection failure: {issue}. System details: {system_details}. Requires engineering support.",
		}},
		{"business", []string{
			"Data sync issue with {issue} affecting our {business_workflow}. Need business continuity solution.",
			"Integration problem: {issue} is disrupting our {operational_process}. Please prioritize.",
			"Workflow interruption due to {issue}. This impacts {business_impact}. Need rapid resolution.",
		}},
	},
	model.CategoryBilling: {
		{"inquiry", []string{
			"Billing inquiry about {issue}. Our account details: {account_context}. Need clarification.",
			"Question regarding {issue}. We're reviewing our {billing_context} and need information.",
			"Account question: {issue}. Looking for details about {billing_aspect}.",
		}},
		{"dispute", []string{
			"Billing concern: {issue}. This appears incorrect based on our {expectation_context}.",
			"Invoice discrepancy: {issue}. Need review of charges for {billing_period}.",
			"Billing issue requiring attention: {issue}. Please investigate and advise.",
		}},
	},
	model.CategoryFeatureRequest: {
		{"enhancement", []string{
			"Feature enhancement idea: {issue}. This would help us {benefit_description}.",
			"Product suggestion: {issue}. Our use case: {use_case_description}.",
			"Feature request for {issue}. This would improve our {improvement_area}.",
		}},
		{"new_functionality", []string{
			"New feature request: {issue}. We need this capability to {capability_need}.",
			"Product enhancement: {issue} would enable us to {enablement_goal}.",
			"Functionality request: {issue} to support our {support_need}.",
		}},
	},
	model.CategoryBugReport: {
		{"technical", []string{
			"Bug report: {issue}. Steps to reproduce: {reproduction_steps}. Expected vs actual behavior: {behavior_description}.",
			"System error: {issue}. Error details: {error_details}. Environment: {environment_info}.",
			"Technical malfunction: {issue}. This occurs when {trigger_condition}. Screenshots attached.",
		}},
		{"user_impact", []string{
			"User-facing issue: {issue} is preventing {user_goal}. Multiple users affected.",
			"Workflow disruption: {issue} blocks normal operations. Urgent user experience fix needed.",
			"Customer impact: {issue} affects {customer_interaction}. Please prioritize resolution.",
		}},
	},
}

var orgActivities = map[model.OrgType][]string{
	model.OrgFaith:       {"worship services", "tithing campaign", "building fund drive", "holiday giving", "stewardship program"},
	model.OrgSchool:      {"tuition collection", "fundraising event", "enrollment period", "payment processing", "family billing"},
	model.OrgNonprofit:   {"fundraising campaign", "donor outreach", "grant application", "donation drive", "annual campaign"},
	model.OrgChildcare:   {"tuition payments", "family billing", "enrollment process", "payment collection", "fee processing"},
	model.OrgCommunityEd: {"course enrollment", "program registration", "membership billing", "class payments", "workshop fees"},
}

var seasonalContexts = map[model.OrgType][]string{
	model.OrgFaith:       {"Christmas giving season", "Easter campaign", "year-end stewardship", "Thanksgiving appeal", "Lenten giving"},
	model.OrgSchool:      {"back-to-school enrollment", "spring fundraiser", "graduation season", "winter break processing", "summer camp registration"},
	model.OrgNonprofit:   {"annual gala", "giving season", "grant deadline period", "awareness month campaign", "year-end drive"},
	model.OrgChildcare:   {"enrollment period", "summer program", "holiday break billing", "new year registration", "spring enrollment"},
	model.OrgCommunityEd: {"course registration", "workshop season", "membership renewal", "program launch", "community outreach"},
}

var businessProcesses = map[model.OrgType][]string{
	model.OrgFaith:       {"Sunday giving collection", "online tithing", "building fund donations", "memorial gifts", "pledge payments"},
	model.OrgSchool:      {"tuition processing", "lunch payments", "activity fees", "fundraiser collections", "parent payments"},
	model.OrgNonprofit:   {"donor management", "fundraising operations", "grant tracking", "volunteer coordination", "membership billing"},
	model.OrgChildcare:   {"parent billing", "enrollment payments", "program fees", "extended care charges", "supply fees"},
	model.OrgCommunityEd: {"class registrations", "workshop payments", "membership processing", "program enrollments", "facility rentals"},
}

var impactScales = map[model.SizeCategory][]string{
	model.SizeSmall:  {"several families", "10-15 users", "multiple members", "our core team"},
	model.SizeMedium: {"dozens of families", "50+ users", "significant portion of members", "multiple departments"},
	model.SizeLarge:  {"hundreds of families", "200+ users", "majority of our community", "entire organization"},
}

var troubleshootingSteps = []string{
	"basic troubleshooting steps", "restarting our browser", "clearing cache and cookies",
	"checking with our IT person", "reviewing documentation", "testing different browsers",
	"verifying our internet connection", "checking account permissions", "consulting with team members",
}

var timeframes = []string{
	"yesterday morning", "two days ago", "earlier this week", "last Friday",
	"over the weekend", "this morning", "after our last update", "since Tuesday",
	"beginning of this week", "late last week",
}

var requesterContexts = map[model.Role]string{
	model.RoleAdmin:     "system administrator",
	model.RoleFinance:   "finance team member",
	model.RoleVolunteer: "volunteer coordinator",
	model.RoleTeacher:   "faculty member",
	model.RoleDirector:  "program director",
}
