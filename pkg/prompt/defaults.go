package prompt

// Template names. Settings may override any of these; unknown names fall
// back to the defaults below.
const (
	KeyTitle    = "title"
	KeySummary  = "summary"
	KeyExpand   = "expand"
	KeyHashtags = "hashtags"
	KeyConcepts = "concepts"
	KeyRelation = "relation"
)

const defaultTitle = `Suggest a short, descriptive title for the following note.
The current title is "{{currentTitle}}". Respond with the title only, no quotes.

{{content}}`

const defaultSummary = `Summarize the following text in a few concise sentences.
Keep the original tone and do not add information that is not in the text.

{{content}}`

const defaultExpand = `Expand the following text into a fuller passage.
Preserve the author's voice and intent, and keep markdown formatting intact.

{{content}}`

const defaultHashtags = `Suggest between three and six hashtags for the following
note. Respond with the hashtags on a single line, each starting with #,
separated by spaces.

{{content}}`

const defaultConcepts = `Identify the core concepts covered by the following note.
Respond with a JSON object of the form {"concepts": ["concept one", "concept two"]}
and nothing else.

{{content}}`

const defaultRelation = `You are comparing two notes from the same knowledge vault.

Note "{{sourceTitle}}" covers: {{sourceConcepts}}
Note "{{targetTitle}}" covers: {{targetConcepts}}

Judge how closely related the two notes are. Respond with a JSON object of the
form {"similarityScore": 0.0, "context": "one sentence explaining the connection"}
where similarityScore is between 0.0 and 1.0, and nothing else.`

// Defaults returns the built-in template set keyed by name.
func Defaults() map[string]string {
	return map[string]string{
		KeyTitle:    defaultTitle,
		KeySummary:  defaultSummary,
		KeyExpand:   defaultExpand,
		KeyHashtags: defaultHashtags,
		KeyConcepts: defaultConcepts,
		KeyRelation: defaultRelation,
	}
}
