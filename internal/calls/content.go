// ABOUTME: Phrase pools the dialogue state machine draws from.
// ABOUTME: Pools are keyed by issue category, support track or organization type.

package calls

import (
	"github.com/2389/deskgen/internal/classify"
	"github.com/2389/deskgen/internal/model"
)

var agentGreetings = []string{
	"Hi, this is {agent_name} with ZENDESK support. How can I help you today?",
	"Thank you for calling ZENDESK, this is {agent_name}. What can I do for you?",
	"Good {time_of_day}, you've reached ZENDESK customer service. This is {agent_name}.",
	"Hello and welcome to ZENDESK support. My name is {agent_name}.",
	"Thanks for contacting ZENDESK. This is {agent_name} speaking.",
	"Hi there! {agent_name} here from ZENDESK support team.",
	"Good {time_of_day}! This is {agent_name} with ZENDESK customer care.",
	"Hello, {agent_name} from ZENDESK support. How may I assist you?",
	"Thanks for calling in today. This is {agent_name}.",
	"Hi, {agent_name} with ZENDESK. What brings you to us today?",
}

var customerOpenings = []string{
	"Hi {agent_name}, I'm calling about {issue_brief}",
	"Hello, I hope you can help me with {issue_brief}",
	"Good {time_of_day}, we're having trouble with {issue_brief}",
	"Hi there, I need assistance with {issue_brief}",
	"Hello {agent_name}, I'm reaching out because {issue_brief}",
	"Hi, I was hoping you could help us resolve {issue_brief}",
	"Good {time_of_day}, we've been experiencing {issue_brief}",
	"Hello, I'm calling to get help with {issue_brief}",
	"Hi {agent_name}, we really need help with {issue_brief}",
	"Good {time_of_day}, I'm calling about {issue_brief}",
}

var problemDescriptions = map[classify.IssueCategory][]string{
	classify.IssuePayment: {
		"our payment processing system isn't working correctly",
		"duplicate charges appearing on our account",
		"failed transactions that still show as pending",
		"our card being declined even though it's valid",
		"unexpected fees that weren't disclosed upfront",
		"payment confirmations not being sent to donors",
		"recurring donations stopping without explanation",
		"our payment gateway timing out frequently",
		"charges appearing for services we didn't use",
		"bank deposit amounts not matching our records",
		"payment failures during high-traffic periods",
		"incorrect processing of refund requests",
		"our donor payment methods being marked as invalid",
		"transaction reports showing incomplete data",
		"payment processing delays affecting our cash flow",
	},
	classify.IssueIntegration: {
		"our QuickBooks sync that stopped working last week",
		"data not transferring properly to our CRM system",
		"our website integration showing error messages",
		"API connections timing out repeatedly",
		"our donor management system not receiving updates",
		"accounting software import failing with format errors",
		"webhook notifications not being delivered",
		"our membership database not syncing properly",
		"third-party app connections being dropped",
		"data mapping issues between systems",
		"authentication errors with our integrations",
		"our reporting tools not pulling current data",
		"custom field mappings getting reset",
		"integration performance being extremely slow",
		"our backup systems not receiving data feeds",
	},
	classify.IssueTraining: {
		"learning how to set up recurring donation campaigns",
		"understanding the new reporting dashboard features",
		"training our volunteers on the donation processing system",
		"getting our staff up to speed on the mobile app",
		"learning best practices for donor communication",
		"understanding how to customize our giving forms",
		"training on the event management module",
		"learning to generate custom financial reports",
		"understanding security settings and user permissions",
		"getting familiar with the bulk operations features",
		"learning how to set up automated thank you messages",
		"understanding the peer-to-peer fundraising tools",
		"training on the pledge management system",
		"learning to use the donor analytics features",
		"getting help with campaign performance optimization",
	},
	classify.IssueFeature: {
		"exploring options for text-to-give functionality",
		"looking into mobile wallet payment options",
		"investigating peer-to-peer fundraising capabilities",
		"learning about advanced reporting features",
		"exploring multi-location management tools",
		"investigating custom branding options for our forms",
		"looking into automated donor segmentation features",
		"exploring integration options for our email platform",
		"investigating compliance and audit trail features",
		"learning about donor portal self-service options",
		"exploring options for handling planned giving",
		"investigating membership management capabilities",
		"looking into volunteer hour tracking integration",
		"exploring options for grant management features",
		"investigating social media integration capabilities",
	},
	classify.IssueTechnical: {
		"our donation forms loading very slowly for users",
		"error messages appearing during the checkout process",
		"our dashboard not displaying current information",
		"mobile app crashes when processing donations",
		"security alerts that we don't understand",
		"our admin panel being inaccessible intermittently",
		"data export functions not working properly",
		"email notifications not being delivered consistently",
		"our custom domain setup having certificate issues",
		"database connection errors affecting operations",
		"our backup and recovery processes failing",
		"performance issues during peak donation periods",
		"our two-factor authentication not working correctly",
		"browser compatibility issues with our donation pages",
		"our scheduled reports not generating automatically",
	},
}

// alignedBriefs restate the ticket in the caller's words; first match wins.
var alignedBriefs = []struct {
	matcher *classify.Matcher
	brief   string
}{
	{classify.NewMatcher("webhook", "notification"), "webhook notifications not being delivered properly"},
	{classify.NewMatcher("quickbooks", "sync", "integration"), "data synchronization issues affecting our reporting"},
	{classify.NewMatcher("payment", "process", "transaction"), "payment processing issues during transactions"},
	{classify.NewMatcher("card declined", "declined"), "payment cards being declined even though they should be valid"},
	{classify.NewMatcher("refund", "refunding"), "refund processing taking too long"},
	{classify.NewMatcher("training", "help", "learn"), "getting help with system training and usage"},
	{classify.NewMatcher("setup", "configuration", "install"), "assistance with system setup and configuration"},
	{classify.NewMatcher("billing", "invoice", "charges"), "questions about billing and account charges"},
	{classify.NewMatcher("feature", "request", "enhancement"), "exploring options for new features and enhancements"},
	{classify.NewMatcher("error", "issue", "problem"), "system issues that are affecting our operations"},
}

var (
	empathyLines = []string{
		"I completely understand how frustrating that must be",
		"I can definitely see why this would be concerning for you",
		"That sounds really challenging, and I want to help resolve this",
		"I appreciate you bringing this to our attention",
		"I can imagine how disruptive this has been to your operations",
		"That's definitely not the experience we want you to have",
		"I understand the urgency of getting this resolved quickly",
		"I can see why this would be impacting your donor relationships",
		"That must be really stressful for your team to deal with",
		"I appreciate your patience while we work through this together",
	}
	investigationLines = []string{
		"Let me pull up your account details right away",
		"I'm going to investigate this thoroughly for you",
		"Let me check what's happening in your system",
		"I'll review your recent activity to understand the issue",
		"Let me access your account and see what's going on",
		"I'm going to dig into the technical details here",
		"Let me examine your configuration settings",
		"I'll check our system logs to identify the problem",
		"Let me review your account history to find the cause",
		"I'm going to run some diagnostics on your setup",
	}
	solutionLines = []string{
		"I found the issue and here's what I can do to fix it",
		"I have a solution that should resolve this completely",
		"I can implement a fix right now that will address this",
		"I've identified the problem and have several options for you",
		"I can resolve this immediately and prevent it from happening again",
		"I have both a quick fix and a long-term solution for you",
		"I can correct this issue and set up monitoring to prevent recurrence",
		"I found exactly what's causing this and can fix it today",
		"I have a comprehensive solution that addresses all aspects of this",
		"I can implement changes that will solve this permanently",
	}
	explanationLines = []string{
		"Let me walk you through exactly what I'm doing",
		"I'll explain each step as I make these changes",
		"Here's the process I'm following to resolve this",
		"Let me show you what's happening behind the scenes",
		"I'll break down the technical details for you",
		"Let me explain why this happened and how we're fixing it",
		"I'll walk you through the solution step by step",
		"Here's what I'm implementing and why it will work",
		"Let me explain the technical process for this fix",
		"I'll describe what each change accomplishes",
	}
)

type orgContext struct {
	seasonal    []string
	terminology []string
}

var orgContexts = map[model.OrgType]orgContext{
	model.OrgFaith: {
		seasonal:    []string{"Christmas season", "Easter giving", "Thanksgiving appeals", "year-end stewardship", "Lenten giving"},
		terminology: []string{"congregation", "stewardship", "tithe", "offering", "ministry", "fellowship", "worship", "pastor", "deacon"},
	},
	model.OrgSchool: {
		seasonal:    []string{"back-to-school season", "graduation time", "winter break", "spring fundraisers", "summer enrollment"},
		terminology: []string{"tuition", "enrollment", "parent portal", "student accounts", "fundraiser", "PTA", "athletics", "principal"},
	},
	model.OrgNonprofit: {
		seasonal:    []string{"annual campaign", "giving season", "grant deadlines", "awareness month", "fundraising gala"},
		terminology: []string{"donors", "supporters", "mission", "impact", "programs", "volunteers", "beneficiaries", "board"},
	},
}

func contextFor(t model.OrgType) orgContext {
	if c, ok := orgContexts[t]; ok {
		return c
	}
	return orgContexts[model.OrgNonprofit]
}

var (
	technicalDeepDive = []string{
		"Can you tell me more about when this first started happening?",
		"Let me check if this is related to any recent system updates",
		"I want to verify your current configuration settings",
		"Let me review the error logs to pinpoint the exact cause",
	}
	technicalAreas = []string{"admin dashboard", "reporting module", "payment gateway", "integration layer"}

	clarifications = []string{
		"Just to make sure I understand correctly, you're seeing {specific_issue}?",
		"Let me confirm the timeline - this started around {timeframe}?",
		"To clarify, this is affecting your system specifically?",
		"I want to verify that this is what you're experiencing",
	}
	clarifiedIssues     = []string{"timeout errors", "data sync failures", "payment processing delays", "report generation issues"}
	clarifiedTimeframes = []string{"last week", "this month", "after the recent update", "since Tuesday"}

	expansions = []string{
		"I can also show you some additional features that might help",
		"While we're working on this, let me mention some related improvements",
		"I think you might benefit from some other capabilities we offer",
		"This gives us a good opportunity to optimize your setup further",
	}
	followUps = []string{
		"I'll monitor this for the next few days to ensure it's working properly",
		"Let me schedule a follow-up to check how everything is performing",
		"I want to make sure you're completely satisfied with this resolution",
		"I'll send you some additional resources that might be helpful",
	}
)

// troubleshooting is the exchange added to calls longer than ten minutes.
type troubleshooting struct {
	steps     []string
	concerns  []string
	responses []string
}

var troubleshootingByTrack = map[classify.Track]troubleshooting{
	classify.TrackPayment: {
		steps: []string{
			"Let me check your payment gateway configuration and transaction logs.",
			"I'm reviewing your merchant account settings and processing rules.",
			"Let me examine the payment flow and identify where the transaction is failing.",
			"I'm going to test your payment processing with our sandbox environment.",
			"Let me verify your bank account details and ACH authorization settings.",
		},
		concerns: []string{
			"Will our donors' payment information be secure during this process?",
			"How will this affect our recurring donations and scheduled payments?",
			"Should we notify our donors about potential payment delays?",
			"What's the risk of losing transactions during the fix?",
			"Can we set up backup payment processing while this is resolved?",
		},
		responses: []string{
			"I can assure you all donor payment information remains completely secure. The issue is in the processing flow, not data storage. I'm implementing a fix that will restore normal payment processing within 2-4 hours.",
			"Your recurring donations will be automatically retried once we resolve this. I'm setting up monitoring to ensure all scheduled payments process correctly going forward.",
			"This appears to be related to recent banking regulations. I'm updating your payment processing rules to ensure full compliance with the new requirements.",
			"I'm implementing additional validation checks to prevent payment failures and setting up real-time alerts for any processing issues.",
		},
	},
	classify.TrackIntegration: {
		steps: []string{
			"Let me check your API credentials and authentication tokens.",
			"I'm reviewing the data sync logs to identify where the connection is breaking.",
			"Let me test the webhook endpoints and verify the data mapping configuration.",
			"I'm going to examine your integration settings and permission levels.",
			"Let me validate the data format and check for any recent schema changes.",
		},
		concerns: []string{
			"Will this affect our financial reporting and accounting records?",
			"How current is our data and what might be missing?",
			"Should we pause data entry until the sync is working again?",
			"What's the risk of duplicate records when the sync resumes?",
			"Can we manually export data as a backup while this is fixed?",
		},
		responses: []string{
			"Your accounting data integrity is our top priority. I'm implementing a sync validation process that will ensure all transactions are properly matched between systems.",
			"I can provide you with a data export covering the affected period. Once we restore the sync, I'll run a reconciliation to ensure nothing was missed.",
			"This appears to be related to API version updates. I'm updating your integration to use the latest version with improved error handling and retry logic.",
			"I'm setting up duplicate detection rules and will run a cleanup process to ensure your data remains accurate and consolidated.",
		},
	},
	classify.TrackTraining: {
		steps: []string{
			"Let me set up a personalized training session tailored to your specific needs.",
			"I'm going to walk you through each feature step-by-step with your actual data.",
			"Let me create custom documentation that matches your organization's workflow.",
			"I'm going to set up practice scenarios using your real use cases.",
			"Let me schedule follow-up sessions to ensure you're comfortable with all features.",
		},
		concerns: []string{
			"How long will it take our team to become proficient with the system?",
			"What resources are available for ongoing training and support?",
			"Can you provide training materials specific to our organization type?",
			"How do we ensure all staff members get proper training?",
			"What's the best way to train new staff members as we grow?",
		},
		responses: []string{
			"I'll create a comprehensive training plan that covers both basic functions and advanced features specific to faith-based organizations. Most teams become proficient within 2-3 weeks.",
			"I'm setting up access to our learning portal with role-based training modules. You'll also have direct access to our support team for any questions.",
			"I'll provide customized quick-reference guides and video tutorials that show exactly how to handle your most common scenarios.",
			"I'm scheduling a train-the-trainer session with your key staff so they can help onboard new team members efficiently.",
		},
	},
	classify.TrackGeneral: {
		steps: []string{
			"Let me walk you through the diagnostic steps I'm running on your account.",
			"I can see several configuration options that might be causing this issue.",
			"Let me check your historical data to identify any patterns or changes.",
			"I'm going to run a few tests to isolate the root cause of this problem.",
			"Let me verify your current settings and compare them to our recommended configuration.",
		},
		concerns: []string{
			"How long do you think this will take to resolve completely?",
			"Will this affect any of our other systems or processes?",
			"Can you explain what might have caused this issue in the first place?",
			"Are there any preventive measures we should take to avoid this in the future?",
			"What should I tell my team about this issue while we're working on it?",
		},
		responses: []string{
			"That's a great question. Based on what I'm seeing, this typically takes about 24-48 hours to fully resolve. I'll monitor the implementation closely and keep you updated on progress.",
			"I can assure you this won't impact your other systems. The issue is isolated to this specific module. Let me explain exactly what's happening and why it's contained.",
			"This appears to be related to a recent platform update. I'm implementing additional safeguards to prevent similar issues in the future.",
			"I'm setting up proactive monitoring alerts so we can catch any similar issues before they impact your users. This will give us much better visibility going forward.",
		},
	},
}

// deepDive is the multi-round discussion added to calls longer than twenty minutes.
type deepDive struct {
	discussion   []string
	questions    []string
	explanations []string
}

var deepDiveByTrack = map[classify.Track]deepDive{
	classify.TrackPayment: {
		discussion: []string{
			"Let me explain the payment processing architecture and how transactions flow through our system.",
			"I want to show you different payment methods and redundancy options we can set up for your organization.",
			"Let me walk you through our enterprise payment security protocols and compliance measures.",
			"I'm going to coordinate with our payment processing team to implement enhanced fraud protection for your account.",
		},
		questions: []string{
			"How does this payment issue affect your donors' giving experience?",
			"What's your typical transaction volume and timing patterns?",
			"Are there any PCI compliance requirements we need to consider?",
			"How do you handle failed payments and donor communication currently?",
		},
		explanations: []string{
			"I'll implement a seamless retry system for failed payments and set up automated donor notifications with clear next steps.",
			"Based on your volume, I'm setting up dedicated processing channels and real-time monitoring to ensure optimal performance.",
			"I'll coordinate with our compliance team to ensure all PCI requirements are met and provide you with updated security documentation.",
			"I'm creating an automated donor communication workflow that handles payment issues professionally while maintaining donor relationships.",
		},
	},
	classify.TrackIntegration: {
		discussion: []string{
			"Let me explain the data integration architecture and how information flows between your systems.",
			"I want to show you different sync strategies and backup options for maintaining data consistency.",
			"Let me walk you through our enterprise API security and rate limiting protocols.",
			"I'm going to coordinate with our integration team to implement real-time monitoring and alerting for your data flows.",
		},
		questions: []string{
			"How critical is real-time data sync for your daily operations?",
			"What's your data volume and how often do you need synchronization?",
			"Are there any audit trail requirements for financial data transfers?",
			"How do you currently handle data discrepancies between systems?",
		},
		explanations: []string{
			"I'll set up near real-time sync with automated conflict resolution and detailed logging for audit purposes.",
			"Based on your volume, I'm implementing batch processing with incremental updates to optimize performance while maintaining accuracy.",
			"I'll create comprehensive audit trails that track every data change with timestamps and user attribution for compliance reporting.",
			"I'm implementing automated data validation rules that will catch and resolve discrepancies before they impact your operations.",
		},
	},
	classify.TrackGeneral: {
		discussion: []string{
			"Let me explain the technical architecture involved here so you understand why this is happening.",
			"I want to show you a few different approaches we can take to solve this problem.",
			"Let me walk you through our enterprise-level troubleshooting protocol for this type of issue.",
			"I'm going to coordinate with our engineering team to implement a custom solution for your specific use case.",
		},
		questions: []string{
			"Can you help me understand how this fits into your overall workflow?",
			"What's your timeline for implementing these changes?",
			"Are there any compliance or security considerations I should be aware of?",
			"How will this impact your users during the transition period?",
		},
		explanations: []string{
			"Absolutely. Let me break down the implementation timeline and what you can expect at each stage.",
			"Good point. I'll coordinate with our compliance team to ensure we meet all your regulatory requirements.",
			"I'll create a detailed migration plan that minimizes any disruption to your users.",
			"Let me set up a dedicated support channel for your team during this transition.",
		},
	},
}

// escalation closes out calls longer than thirty minutes.
type escalation struct {
	handoffs []string
	plans    []string
}

var escalationByTrack = map[classify.Track]escalation{
	classify.TrackPayment: {
		handoffs: []string{
			"I'm bringing in our senior payment processing specialist to provide additional expertise on this complex financial integration.",
			"Let me connect you with our merchant services team who can provide hands-on assistance with payment gateway optimization.",
			"I'm scheduling a dedicated follow-up call with our compliance team to address the regulatory aspects of your payment processing.",
			"Given the complexity of your payment volume, I'm arranging for our enterprise payment team to take over this case.",
		},
		plans: []string{
			"I'm creating a comprehensive payment optimization plan with specific SLA targets, fraud prevention measures, and donor experience improvements.",
			"Let me document all the payment gateway changes we've discussed and create a detailed implementation roadmap with rollback procedures.",
			"I'll set up daily monitoring calls during the payment system transition to ensure zero transaction downtime.",
			"I'm preparing a detailed payment processing specification document for your finance team and auditors to review.",
		},
	},
	classify.TrackIntegration: {
		handoffs: []string{
			"I'm bringing in our senior integration architect to provide additional expertise on this complex data synchronization challenge.",
			"Let me connect you with our API development team who can provide hands-on assistance with custom integration solutions.",
			"I'm scheduling a dedicated follow-up call with our data engineering team to address the performance optimization aspects.",
			"Given the complexity of your data environment, I'm arranging for our enterprise integration team to take over this case.",
		},
		plans: []string{
			"I'm creating a comprehensive data integration plan with specific sync schedules, error handling protocols, and data validation checkpoints.",
			"Let me document all the API changes we've discussed and create a detailed implementation roadmap with testing phases.",
			"I'll set up automated monitoring and alert systems to track data flow health and catch any integration issues immediately.",
			"I'm preparing a detailed technical integration specification document for your IT team and data administrators to review.",
		},
	},
	classify.TrackGeneral: {
		handoffs: []string{
			"I'm bringing in our senior technical specialist to provide additional expertise on this complex issue.",
			"Let me connect you with our implementation team who can provide hands-on assistance with the setup.",
			"I'm scheduling a dedicated follow-up call with our product team to address the feature enhancement aspects.",
			"Given the complexity of your environment, I'm arranging for our enterprise support team to take over this case.",
		},
		plans: []string{
			"I'm creating a comprehensive action plan with specific timelines, milestones, and success criteria.",
			"Let me document all the configuration changes we've discussed and create a detailed implementation roadmap.",
			"I'll set up regular check-in calls to monitor progress and address any questions that come up.",
			"I'm preparing a detailed technical specification document for your IT team to review.",
		},
	},
}

var closings = map[model.Satisfaction]string{
	model.SatisfactionGood: "This has been really helpful. Thank you for taking the time to explain everything.",
	model.SatisfactionBad:  "I appreciate the effort, but this has been an ongoing issue and we need it fully resolved.",
}

const defaultClosing = "Okay, that sounds like it should work. I'll keep an eye on it."
