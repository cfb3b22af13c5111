package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

// MessageSender is the SMS/messaging side of the notification sink.
type MessageSender interface {
	SendMessage(phone, body string) error
}

type SMSService struct {
	sns *awssns.Client
}

func NewSMSService(region string) (*SMSService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SMSService{sns: awssns.NewFromConfig(cfg)}, nil
}

// SendMessage publishes directly to a phone number in E.164 form.
func (s *SMSService) SendMessage(phone, body string) error {
	_, err := s.sns.Publish(context.TODO(), &awssns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("sms send failed: %w", err)
	}
	return nil
}
