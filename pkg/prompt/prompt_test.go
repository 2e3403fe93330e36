package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/notesage/notesage/pkg/prompt"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
	}{
		{
			name:     "bound placeholder",
			template: "Hello {{name}}",
			vars:     map[string]string{"name": "World"},
			want:     "Hello World",
		},
		{
			name:     "unbound placeholder left verbatim",
			template: "Hello {{name}}",
			vars:     map[string]string{},
			want:     "Hello {{name}}",
		},
		{
			name:     "multiple variables",
			template: "{{sourceTitle}} vs {{targetTitle}}",
			vars:     map[string]string{"sourceTitle": "A", "targetTitle": "B"},
			want:     "A vs B",
		},
		{
			name:     "repeated placeholder",
			template: "{{content}} and {{content}}",
			vars:     map[string]string{"content": "x"},
			want:     "x and x",
		},
		{
			name:     "no escaping of substituted text",
			template: "{{content}}",
			vars:     map[string]string{"content": "literal {{inner}} braces"},
			want:     "literal {{inner}} braces",
		},
		{
			name:     "mixed bound and unbound",
			template: "{{currentTitle}}: {{content}}",
			vars:     map[string]string{"content": "body"},
			want:     "{{currentTitle}}: body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prompt.Render(tt.template, tt.vars))
		})
	}
}

func TestDefaults(t *testing.T) {
	defaults := prompt.Defaults()

	for _, key := range []string{
		prompt.KeyTitle, prompt.KeySummary, prompt.KeyExpand,
		prompt.KeyHashtags, prompt.KeyConcepts, prompt.KeyRelation,
	} {
		assert.NotEmpty(t, defaults[key], "missing default template %q", key)
	}

	assert.Contains(t, defaults[prompt.KeyConcepts], "{{content}}")
	assert.Contains(t, defaults[prompt.KeyRelation], "{{sourceTitle}}")
	assert.Contains(t, defaults[prompt.KeyRelation], "{{sourceConcepts}}")
	assert.Contains(t, defaults[prompt.KeyRelation], "{{targetTitle}}")
	assert.Contains(t, defaults[prompt.KeyRelation], "{{targetConcepts}}")
}
