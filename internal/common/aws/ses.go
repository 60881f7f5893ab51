// internal/common/aws/ses.go
package aws

import (
	"context"
	"errors"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"

var ErrNoRecipients = errors.New("ses: no recipients")

// SESAPI is the part of *ses.Client the mailer calls.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Email struct {
	To       []string
	ReplyTo  []string
	Subject  string
	TextBody string
	HTMLBody string
}

type SESClient struct {
	api  SESAPI
	from string
}

func NewSESClient(ctx context.Context, region, from string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewSESClientWithAPI(ses.NewFromConfig(cfg), from), nil
}

func NewSESClientWithAPI(api SESAPI, from string) *SESClient {
	return &SESClient{api: api, from: from}
}

// SendEmail sends msg from the configured address and returns the SES
// message ID.
func (s *SESClient) SendEmail(ctx context.Context, msg Email) (string, error) {
	if len(msg.To) == 0 {
		return "", ErrNoRecipients
	}

	body := &sestypes.Body{}
	if msg.TextBody != "" {
		body.Text = &sestypes.Content{Data: awssdk.String(msg.TextBody), Charset: awssdk.String(charsetUTF8)}
	}
	if msg.HTMLBody != "" {
		body.Html = &sestypes.Content{Data: awssdk.String(msg.HTMLBody), Charset: awssdk.String(charsetUTF8)}
	}

	out, err := s.api.SendEmail(ctx, &ses.SendEmailInput{
		Source:           awssdk.String(s.from),
		Destination:      &sestypes.Destination{ToAddresses: msg.To},
		ReplyToAddresses: msg.ReplyTo,
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: awssdk.String(msg.Subject), Charset: awssdk.String(charsetUTF8)},
			Body:    body,
		},
	})
	if err != nil {
		return "", err
	}
	return awssdk.ToString(out.MessageId), nil
}
