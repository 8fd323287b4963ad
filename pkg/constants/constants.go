package constants

import "time"

// Feedback chunking limits
const (
	// FeedbackChunkThreshold is the display-character count at which feedback
	// content is split into multiple embeds
	FeedbackChunkThreshold = 1024
	// MaxEmbedDescriptionLength is Discord's embed description character limit
	MaxEmbedDescriptionLength = 4096
	// MaxEmbedsPerMessage is the number of embeds a single message may carry
	MaxEmbedsPerMessage = 10
)

// Message length limits
const (
	// MaxMessageLength is Discord's plain message character limit
	MaxMessageLength = 2000
	// MaxEmbedTitleLength is Discord's embed title character limit
	MaxEmbedTitleLength = 256
	// MaxEmbedFieldValueLength is Discord's embed field value character limit
	MaxEmbedFieldValueLength = 1024
)

// Timeouts and delays
const (
	// DefaultHandlerTimeout bounds a single command handler invocation
	DefaultHandlerTimeout = 2 * time.Minute
	// DefaultAnnounceTimeout bounds a single scheduled announcement delivery
	DefaultAnnounceTimeout = 30 * time.Second
	// DefaultFeedbackTimeout bounds dispatcher-generated feedback sends
	DefaultFeedbackTimeout = 10 * time.Second
	// DefaultShutdownTimeout is the grace period for closing the gateway session
	DefaultShutdownTimeout = 5 * time.Second
	// DefaultRetryMaxElapsed is the total time budget for transport send retries
	DefaultRetryMaxElapsed = 30 * time.Second
)

// Token masking
const (
	// MinSecretLengthForMasking is the minimum secret length to apply masking
	MinSecretLengthForMasking = 10
	// SecretMaskPrefixLength is the length of prefix to show before masking
	SecretMaskPrefixLength = 7
	// SecretMaskSuffixLength is the length of suffix to show after masking
	SecretMaskSuffixLength = 4
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)
