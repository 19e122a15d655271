package chat

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"kone-backend/internal/models"
)

// Fixed user-facing strings for the assistant panel. The webhook answers
// in Korean, so its failure messages do too.
const (
	emptyReply   = "응답을 가져오지 못했습니다."
	failureReply = "죄송합니다. 서버 연결에 문제가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// Client proxies the conversational assistant webhook. The assistant's
// own logic lives behind the webhook; this side only relays messages and
// absorbs failures.
type Client struct {
	client     *resty.Client
	webhookURL string
	log        *zap.Logger
}

func New(webhookURL string, log *zap.Logger) *Client {
	return &Client{client: resty.New(), webhookURL: webhookURL, log: log}
}

// Configured reports whether a webhook endpoint is set.
func (c *Client) Configured() bool { return c.webhookURL != "" }

type webhookRequest struct {
	ChatInput string `json:"chatInput"`
	SessionID string `json:"sessionId"`
}

// webhookReply tolerates the webhook's two known answer shapes: the text
// arrives under either an output or a response field.
type webhookReply struct {
	Output   string `json:"output"`
	Response string `json:"response"`
}

func (r webhookReply) text() string {
	if r.Output != "" {
		return r.Output
	}
	return r.Response
}

// Send relays one message and returns the assistant's reply. The webhook
// answers with either a single object or a one-element array; both are
// accepted. Any failure produces the fixed apology reply flagged as an
// error, never a transport error.
func (c *Client) Send(ctx context.Context, req models.ChatRequest) models.ChatReply {
	if !c.Configured() {
		return models.ChatReply{Content: failureReply, IsError: true}
	}

	resp, err := c.client.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(webhookRequest{ChatInput: req.Message, SessionID: req.SessionID}).
		Post(c.webhookURL)
	if err != nil {
		c.log.Error("chat webhook unreachable", zap.Error(err))
		return models.ChatReply{Content: failureReply, IsError: true}
	}
	if resp.IsError() {
		c.log.Error("chat webhook error", zap.Int("status", resp.StatusCode()))
		return models.ChatReply{Content: failureReply, IsError: true}
	}

	content := parseReply(resp.Body())
	if content == "" {
		content = emptyReply
	}
	return models.ChatReply{Content: content}
}

func parseReply(body []byte) string {
	var single webhookReply
	if err := json.Unmarshal(body, &single); err == nil {
		if t := single.text(); t != "" {
			return t
		}
	}
	var many []webhookReply
	if err := json.Unmarshal(body, &many); err == nil && len(many) > 0 {
		return many[0].text()
	}
	return ""
}
