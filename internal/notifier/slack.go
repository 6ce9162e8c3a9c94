package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts incidents to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	sleep      func(time.Duration)
}

// NewSlackNotifier returns a notifier that posts each incident to Slack.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Notify sends the incident as one Block Kit message. A 429 is retried once
// after the Retry-After delay.
func (s *SlackNotifier) Notify(inc model.Incident) error {
	body, err := json.Marshal(buildPayload(inc))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	status, retryAfter, err := s.post(body)
	if err != nil {
		return err
	}
	if status == http.StatusTooManyRequests {
		s.logger.Warn("slack rate limited, retrying", "retry_after", retryAfter)
		s.sleep(retryAfter)
		if status, _, err = s.post(body); err != nil {
			return fmt.Errorf("retry: %w", err)
		}
	}
	if status != http.StatusOK {
		return fmt.Errorf("slack returned %d", status)
	}
	s.logger.Debug("slack incident sent", "source", inc.Source, "event", inc.Event)
	return nil
}

func (s *SlackNotifier) post(body []byte) (status int, retryAfter time.Duration, err error) {
	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
	return resp.StatusCode, time.Duration(max(secs, 1)) * time.Second, nil
}

// Block Kit payload types.

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Fields   []slackText `json:"fields,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendTestMessage sends a sample incident to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	return n.Notify(model.Incident{
		Source:  "jobboard",
		Event:   "notify.test",
		Message: "test incident, notifications are working",
		At:      time.Now(),
	})
}

func buildPayload(inc model.Incident) slackPayload {
	at := inc.At
	if at.IsZero() {
		at = time.Now()
	}
	event := inc.Event
	if event == "" {
		event = "-"
	}

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "⚠️ " + inc.Source + ": " + inc.Message},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Source:*\n" + inc.Source},
				{Type: "mrkdwn", Text: "*Event:*\n" + event},
			},
		},
	}
	if inc.Err != nil {
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: "```" + inc.Err.Error() + "```"},
		})
	}
	blocks = append(blocks,
		slackBlock{
			Type:     "context",
			Elements: []slackText{{Type: "mrkdwn", Text: at.UTC().Format(time.RFC1123)}},
		},
		slackBlock{Type: "divider"},
	)

	return slackPayload{Text: inc.Source + ": " + inc.Message, Blocks: blocks}
}
