// internal/workers/application/send-recommendations/handler_test.go
package sendrecommendations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsclients "scheme-finder/internal/common/aws"
	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
)

// ==========================
// Mock AWS Services
// ==========================

type MockSESService struct {
	sent []*ses.SendEmailInput
	err  error
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, params)
	return &ses.SendEmailOutput{MessageId: aws.String("email-123")}, nil
}

type MockSNSService struct {
	published []*sns.PublishInput
	err       error
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.published = append(m.published, params)
	return &sns.PublishOutput{MessageId: aws.String("sms-123")}, nil
}

var fixedNow = time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)

func createTestHandler(t *testing.T, sesMock *MockSESService, snsMock *MockSNSService) *Handler {
	h := NewHandler(LoadConfig(),
		awsclients.NewMailer(sesMock, "noreply@schemes.gov.in"),
		awsclients.NewTexter(snsMock, "GOVSCH"),
		logger.NewTestLogger(t))
	h.now = func() time.Time { return fixedNow }
	return h
}

func scored() []models.ScoredScheme {
	return []models.ScoredScheme{
		{Scheme: models.Scheme{ID: "pm-kisan", Name: "PM-KISAN Samman Nidhi", State: "Any", Department: "Agriculture", ApplicationLink: "https://pmkisan.gov.in/"}, MatchScore: 100},
		{Scheme: models.Scheme{ID: "ayushman", Name: "Ayushman Bharat", State: "Any", ApplicationLink: "https://pmjay.gov.in/"}, MatchScore: 85},
	}
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_EmailAndSMS(t *testing.T) {
	sesMock, snsMock := &MockSESService{}, &MockSNSService{}
	h := createTestHandler(t, sesMock, snsMock)

	out, err := h.Execute(context.Background(), &Input{
		CitizenID:       "c-1",
		Email:           "citizen@example.in",
		Phone:           "+91 98765 43210",
		Recommendations: scored(),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSent, out.Status)
	assert.Equal(t, []string{ChannelEmail, ChannelSMS}, out.Channels)
	assert.Equal(t, 2, out.SchemeCount)
	assert.Equal(t, "2025-08-15T10:00:00Z", out.SentAt)
	assert.NotEmpty(t, out.NotificationID)

	require.Len(t, sesMock.sent, 1)
	email := sesMock.sent[0]
	assert.Equal(t, "Government Scheme Recommendations", aws.ToString(email.Message.Subject.Data))
	assert.Contains(t, aws.ToString(email.Message.Body.Text.Data), "PM-KISAN Samman Nidhi")
	assert.Contains(t, aws.ToString(email.Message.Body.Html.Data), "https://pmjay.gov.in/")

	require.Len(t, snsMock.published, 1)
	assert.True(t, strings.HasPrefix(aws.ToString(snsMock.published[0].Message), "2 schemes match your profile"))
}

func TestHandler_Execute_Predictions(t *testing.T) {
	sesMock := &MockSESService{}
	h := createTestHandler(t, sesMock, &MockSNSService{})

	out, err := h.Execute(context.Background(), &Input{
		Email: "citizen@example.in",
		Predictions: []models.SchemeRecommendation{
			{ID: "0", SchemeName: "Stand-Up India", State: "All India", ApplicationLink: "https://www.standupmitra.in/"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{ChannelEmail}, out.Channels)
	assert.Equal(t, 1, out.SchemeCount)
	assert.Contains(t, aws.ToString(sesMock.sent[0].Message.Body.Text.Data), "Stand-Up India")
}

func TestHandler_Execute_NoContact(t *testing.T) {
	h := createTestHandler(t, &MockSESService{}, &MockSNSService{})

	out, err := h.Execute(context.Background(), &Input{CitizenID: "c-1", Recommendations: scored()})
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, out.Status)
	assert.Empty(t, out.Channels)
}

func TestHandler_Execute_ChannelsDisabled(t *testing.T) {
	sesMock, snsMock := &MockSESService{}, &MockSNSService{}
	h := createTestHandler(t, sesMock, snsMock)
	h.config = &Config{Timeout: time.Second}

	out, err := h.Execute(context.Background(), &Input{Email: "citizen@example.in", Phone: "+919876543210"})
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, out.Status)
	assert.Empty(t, sesMock.sent)
	assert.Empty(t, snsMock.published)
}

func TestHandler_Execute_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		sesErr   error
		snsErr   error
		wantCode apperrors.ErrorCode
		channels []string
	}{
		{
			name:     "invalid email",
			input:    &Input{Email: "not-an-email"},
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "invalid phone",
			input:    &Input{Phone: "12"},
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "email failure is retryable",
			input:    &Input{Email: "citizen@example.in"},
			sesErr:   errors.New("throttled"),
			wantCode: apperrors.ErrCodeNotificationSendFailed,
		},
		{
			name:     "sms-only failure",
			input:    &Input{Phone: "+919876543210"},
			snsErr:   errors.New("opted out"),
			wantCode: apperrors.ErrCodeNotificationSendFailed,
		},
		{
			name:     "sms failure after email",
			input:    &Input{Email: "citizen@example.in", Phone: "+919876543210"},
			snsErr:   errors.New("opted out"),
			channels: []string{ChannelEmail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, &MockSESService{err: tt.sesErr}, &MockSNSService{err: tt.snsErr})

			out, err := h.Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				var stdErr *apperrors.StandardError
				require.ErrorAs(t, err, &stdErr)
				assert.Equal(t, tt.wantCode, stdErr.Code)
				if tt.wantCode == apperrors.ErrCodeNotificationSendFailed {
					assert.True(t, stdErr.Retryable)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.channels, out.Channels)
			assert.Equal(t, StatusSent, out.Status)
		})
	}
}
