package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var encoding = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.GetEncoding("cl100k_base")
})

// countTokens estimates the token count of text. Counts are best-effort
// bookkeeping for the interaction log; 0 means the encoding was unavailable.
func countTokens(text string) int {
	enc, err := encoding()
	if err != nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}
