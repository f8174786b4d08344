package llm

// suggestionInstruction asks the model for fuzzy-match help when a search term
// matched no stored device model. The matching logic lives entirely inside the
// external model; this side only shapes the request and parses the response.
const suggestionInstruction = `A user searched a phone-accessory compatibility database and found nothing.
Search term: "%s"
Accessory category: "%s"

Suggest likely device-model matches for the term (correcting typos, expanding
abbreviations, normalizing marketing names), plus alternative search terms the
user could try. If the term is too ambiguous to act on, set needsFollowUp to
true.

Respond with JSON only, in exactly this shape:
{
	"suggestedMatches": ["..."],
	"alternativeTerms": ["..."],
	"needsFollowUp": false
}`
