package queue

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// mailer delivers one rendered notification.
type mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// sesMailer sends plain-text email through AWS SESv2 using whatever
// credentials the default chain resolves (env, shared config, or an
// instance role).
type sesMailer struct {
	client *sesv2.Client
	from   string
}

func newSESMailer(ctx context.Context) (*sesMailer, error) {
	from := os.Getenv("SES_FROM_EMAIL")
	if from == "" {
		return nil, fmt.Errorf("SES_FROM_EMAIL not set")
	}
	region := os.Getenv("SES_AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &sesMailer{client: sesv2.NewFromConfig(cfg), from: from}, nil
}

func (m *sesMailer) Send(ctx context.Context, to, subject, body string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &sestypes.Destination{ToAddresses: []string{to}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    &sestypes.Body{Text: &sestypes.Content{Data: aws.String(body)}},
			},
		},
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

// logMailer appends rendered notifications to logs/notifications.log.
// Used when SES is not configured so local and CI runs still surface
// what would have been sent.
type logMailer struct{}

func (logMailer) Send(_ context.Context, to, subject, body string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "notifications.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] to=%q subject=%q\n%s\n---\n",
		time.Now().UTC().Format(time.RFC3339), to, subject, body)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// newMailer picks SES when configured, otherwise the log fallback.
func newMailer(ctx context.Context) mailer {
	m, err := newSESMailer(ctx)
	if err != nil {
		log.Printf("notification-consumer: SES unavailable (%v); logging notifications instead", err)
		return logMailer{}
	}
	return m
}
