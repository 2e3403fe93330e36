package prompt

import "regexp"

var placeholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render substitutes each {{name}} placeholder in template with its bound
// value. Placeholders with no binding are left as literal text, since
// templates may legitimately omit optional variables. The substituted text
// is sent verbatim to the generation call; no escaping is performed.
func Render(template string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}
