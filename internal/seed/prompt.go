// ABOUTME: Prompt construction for description rewriting.
// ABOUTME: Sends the batch as JSON so the reply can be matched back by position.

package seed

import (
	"encoding/json"
	"fmt"
)

// MaxDescriptionLen caps a rewritten description; longer rewrites keep the template.
const MaxDescriptionLen = 480

// tokensPerDescription bounds the completion so a batch cannot run away.
const tokensPerDescription = 160

const systemPrompt = `You write support tickets for a helpdesk serving churches, schools, nonprofits, childcare centers and community education programs that use a payment and giving platform.
Reply with a bare JSON array of strings. No markdown, no commentary.`

type chatPrompt struct {
	System    string
	User      string
	MaxTokens int
}

func buildPrompt(batch []DescriptionRequest) chatPrompt {
	payload, _ := json.Marshal(batch)
	return chatPrompt{
		System: systemPrompt,
		User: fmt.Sprintf(`Rewrite each of the following %d ticket descriptions so it reads like the customer wrote it.
Keep every fact (amounts, dates, product names, error codes) and the urgency implied by the priority.
Each rewrite is 1-3 sentences and at most %d characters.

Return exactly %d strings, in input order.

Input:
%s`, len(batch), MaxDescriptionLen, len(batch), payload),
		MaxTokens: tokensPerDescription * len(batch),
	}
}
