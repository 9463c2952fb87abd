package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"webinarbooking/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// NotifierConfig holds configuration for creating a notifier.
type NotifierConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewNotifier creates a notifier from config. Provider "ses" sends email via
// AWS SES; "noop" or unknown logs instead of sending.
func NewNotifier(config NotifierConfig) (domain.Notifier, error) {
	switch config.Provider {
	case "ses":
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			log.Printf("[NOTIFIER] WARNING: TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		client := ses.NewFromConfig(awsCfg)
		return &sesNotifier{
			client:      client,
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
		}, nil
	case "noop":
		return &noopNotifier{}, nil
	default:
		log.Printf("[NOTIFIER] Unknown provider %q, using noop", config.Provider)
		return &noopNotifier{}, nil
	}
}

type sesNotifier struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

func (s *sesNotifier) Send(ctx context.Context, to, subject, body string) error {
	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	log.Printf("[NOTIFIER] Email sent via SES. MessageID: %s", aws.ToString(result.MessageId))
	return nil
}

type noopNotifier struct{}

func (n *noopNotifier) Send(ctx context.Context, to, subject, body string) error {
	log.Println("[NOTIFIER] Email would be sent (noop)", "to", to, "subject", subject)
	return nil
}
