package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSQS struct {
	mock.Mock
}

func (m *mockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sqs.SendMessageOutput)
	return out, args.Error(1)
}

func TestSQSPublisher_Publish(t *testing.T) {
	event := Event{
		Type:       DonationVerified,
		DonationId: "don-1",
		Amount:     100000,
		ActorId:    "admin-1",
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("Success", func(t *testing.T) {
		client := new(mockSQS)
		client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			var got Event
			if err := json.Unmarshal([]byte(*in.MessageBody), &got); err != nil {
				return false
			}
			return *in.QueueUrl == "https://queue" &&
				got.Type == DonationVerified &&
				got.DonationId == "don-1" &&
				*in.MessageAttributes["event_type"].StringValue == string(DonationVerified)
		})).Return(&sqs.SendMessageOutput{}, nil)

		err := NewSQSPublisher(client, "https://queue").Publish(context.Background(), event)

		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Send Fails", func(t *testing.T) {
		client := new(mockSQS)
		client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		err := NewSQSPublisher(client, "https://queue").Publish(context.Background(), event)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
		client.AssertExpectations(t)
	})
}
