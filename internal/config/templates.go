package config

import "github.com/seyio/leadpilot/pkg/models"

// defaultTemplates are the built-in per-step message templates used when the
// operator hasn't configured their own. Token vocabulary: contactName,
// contactTitle, company, jobTitle, techStack, jobSnippet, senderName,
// senderTitle, senderCompany, valueProps.
var defaultTemplates = map[models.SequenceStep]MessageTemplate{
	models.SeqFirstTouch: {
		Subject: "Quick question about the {{jobTitle}} opening",
		Body: `Hi {{contactName}},

I saw {{company}} is hiring a {{jobTitle}}. We work with teams building on {{techStack}} and I thought it might be worth a short conversation.

{{valueProps}}

Would you be open to a quick call this week?

{{senderName}}
{{senderTitle}}, {{senderCompany}}`,
	},
	models.SeqSecondFollowUp: {
		Subject: "Re: {{jobTitle}} at {{company}}",
		Body: `Hi {{contactName}},

Following up on my last note about the {{jobTitle}} role. Happy to share how we've helped similar teams — no pressure if the timing is off.

{{senderName}}`,
	},
	models.SeqThirdFollowUp: {
		Subject: "One more thought for {{company}}",
		Body: `Hi {{contactName}},

One more thought: given that the role mentions {{techStack}}, there may be a faster path than hiring for everything in-house. Worth five minutes?

{{senderName}}`,
	},
	models.SeqFinalTouch: {
		Subject: "Closing the loop",
		Body: `Hi {{contactName}},

I'll close the loop here. If priorities change around the {{jobTitle}} search, my door is open.

All the best,
{{senderName}}`,
	},
}

// DraftSystemPrompt frames every drafting call. Hydrated with the same
// token map as the step template.
const DraftSystemPrompt = `You are an outreach copywriter for {{senderCompany}}. {{senderCompany}}: {{companyDescription}}. Write in a {{tone}} tone. Keep messages under 120 words, no placeholders, no commentary — return only the message text.`

// DraftTaskPrompt is the per-step task instruction; the rendered step
// template is embedded as the base draft to refine.
const DraftTaskPrompt = `Write the "{{sequenceStep}}" message of an outreach sequence to {{contactName}} ({{contactTitle}} at {{company}}), who posted a {{jobTitle}} opening. Relevant stack: {{techStack}}. Job context: {{jobSnippet}}

Use this draft as the starting point and improve it while keeping its intent:

{{baseDraft}}`
