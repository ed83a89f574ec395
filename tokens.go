package insight

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// estimateTokens approximates how many tokens text occupies using the
// cl100k_base encoding. The second return is false when the encoding is
// unavailable; callers treat the estimate as best-effort.
func estimateTokens(text string) (int, bool) {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return
		}
		encoding = enc
	})
	if encoding == nil {
		return 0, false
	}
	return len(encoding.Encode(text, nil, nil)), true
}
