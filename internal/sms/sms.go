// Package sms delivers OTP codes by text message.
package sms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/GaganMittal847/Companio/internal/config"
	"github.com/GaganMittal847/Companio/internal/httpclient"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// LogSender only logs; used when no provider is configured.
type LogSender struct {
	Logger *zap.SugaredLogger
}

func (s LogSender) Send(_ context.Context, to, _ string) error {
	s.Logger.Debugw("sms delivery skipped, no provider configured", "to", mask(to))
	return nil
}

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

type TwilioSender struct {
	cfg     config.TwilioCfg
	baseURL string
	client  *httpclient.Client
	cb      *gobreaker.CircuitBreaker
}

func NewTwilioSender(cfg config.TwilioCfg, logger *zap.SugaredLogger) *TwilioSender {
	return newTwilioSender(cfg, twilioBaseURL, logger)
}

func newTwilioSender(cfg config.TwilioCfg, baseURL string, logger *zap.SugaredLogger) *TwilioSender {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "twilio",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &TwilioSender{
		cfg:     cfg,
		baseURL: baseURL,
		client: httpclient.NewClient(httpclient.ClientConfig{
			Timeout:         5 * time.Second,
			RetryMaxElapsed: 10 * time.Second,
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
		}),
		cb: cb,
	}
}

// FromConfig returns a Twilio sender when credentials are present.
func FromConfig(cfg config.SMSCfg, logger *zap.SugaredLogger) Sender {
	if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" || cfg.Twilio.From == "" {
		return LogSender{Logger: logger}
	}
	return NewTwilioSender(cfg.Twilio, logger)
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", s.e164(to))
	form.Set("From", s.cfg.From)
	form.Set("Body", body)
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.cfg.AccountSID)

	_, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.PostForm(ctx, endpoint, s.cfg.AccountSID, s.cfg.AuthToken, []byte(form.Encode()))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("sms provider unavailable: %w", err)
	}
	return err
}

func (s *TwilioSender) e164(number string) string {
	if strings.HasPrefix(number, "+") || len(number) != 10 {
		return number
	}
	return s.cfg.CountryCode + number
}

func mask(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
