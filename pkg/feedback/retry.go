package feedback

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/heraldkit/herald/internal/logger"
	"github.com/heraldkit/herald/pkg/constants"
)

// RetrySender wraps a Sender with exponential backoff for transient transport
// failures. The feedback service itself never retries; wrap its Sender in a
// RetrySender when retry is wanted. Rate limiting is not handled here because
// discordgo already waits out rate-limit responses internally.
type RetrySender struct {
	inner      Sender
	maxElapsed time.Duration

	// newBackOff builds the per-call backoff policy. BackOff values are
	// stateful, so a fresh one is needed for every send.
	newBackOff func() backoff.BackOff
}

// RetryOption configures a RetrySender.
type RetryOption func(*RetrySender)

// WithMaxElapsed bounds the total time spent on one send including retries.
func WithMaxElapsed(d time.Duration) RetryOption {
	return func(r *RetrySender) { r.maxElapsed = d }
}

// NewRetrySender wraps inner with retry on transient failures.
func NewRetrySender(inner Sender, opts ...RetryOption) *RetrySender {
	r := &RetrySender{inner: inner, maxElapsed: constants.DefaultRetryMaxElapsed}
	for _, opt := range opts {
		opt(r)
	}
	r.newBackOff = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = r.maxElapsed
		return b
	}
	return r
}

// ChannelMessageSendEmbeds sends channel embeds, retrying transient failures.
func (r *RetrySender) ChannelMessageSendEmbeds(channelID string, embeds []*discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	var m *discordgo.Message
	err := r.retry("channel-message", func() error {
		var err error
		m, err = r.inner.ChannelMessageSendEmbeds(channelID, embeds, options...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// FollowupMessageCreate sends an interaction follow-up, retrying transient failures.
func (r *RetrySender) FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	var m *discordgo.Message
	err := r.retry("interaction-followup", func() error {
		var err error
		m, err = r.inner.FollowupMessageCreate(interaction, wait, data, options...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UserChannelCreate resolves a direct-message channel, retrying transient failures.
func (r *RetrySender) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	var ch *discordgo.Channel
	err := r.retry("dm-channel-create", func() error {
		var err error
		ch, err = r.inner.UserChannelCreate(recipientID, options...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (r *RetrySender) retry(op string, call func() error) error {
	attempts := 0
	return backoff.Retry(func() error {
		attempts++
		err := call()
		if err == nil {
			return nil
		}
		if !retryableSendError(err) {
			return backoff.Permanent(err)
		}
		logger.WithFields(logrus.Fields{
			"operation": op,
			"attempt":   attempts,
			"error":     err,
		}).Warn("transient-send-failure-retrying")
		return err
	}, r.newBackOff())
}

// retryableSendError reports whether a transport failure is worth retrying.
// Cancellation is final, Discord 5xx gateway responses and connection races
// are transient, everything else is treated as permanent.
func retryableSendError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Response == nil {
			return false
		}
		switch restErr.Response.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, probe := range []string{
		"connection reset",
		"connection refused",
		"broken pipe",
		"i/o timeout",
		"unexpected eof",
		"no such host",
	} {
		if strings.Contains(msg, probe) {
			return true
		}
	}
	return false
}
