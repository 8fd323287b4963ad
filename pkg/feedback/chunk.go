package feedback

import (
	"strings"
	"unicode/utf8"

	"github.com/heraldkit/herald/pkg/constants"
)

// contentChunks splits content into the embed descriptions to send, breaking
// on word boundaries only. Content shorter than the chunk threshold becomes a
// single unit. Longer content is rebuilt word by word and flushed at the first
// boundary at or past the threshold, so a unit can exceed the threshold by at
// most one word; a single word longer than the threshold is emitted whole.
// The embed description limit leaves ample headroom for that overshoot.
//
// When target is a user ID, every unit is prefixed with that user's mention.
// The prefix does not count toward the threshold.
func contentChunks(content, target string) []string {
	var prefix string
	if target != "" {
		prefix = "<@" + target + "> "
	}
	if utf8.RuneCountInString(content) < constants.FeedbackChunkThreshold {
		return []string{prefix + strings.TrimSpace(content)}
	}

	var (
		chunks []string
		buf    strings.Builder
		length int
	)
	for _, word := range strings.Fields(content) {
		buf.WriteString(word)
		buf.WriteByte(' ')
		length += utf8.RuneCountInString(word) + 1
		if length >= constants.FeedbackChunkThreshold {
			chunks = append(chunks, prefix+strings.TrimSpace(buf.String()))
			buf.Reset()
			length = 0
		}
	}
	if tail := strings.TrimSpace(buf.String()); tail != "" {
		chunks = append(chunks, prefix+tail)
	}
	return chunks
}
