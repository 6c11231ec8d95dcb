// Package mentor talks to the AI mentor voice webhook and plays its replies.
package mentor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/utils"
)

const (
	HeaderAssistantText = "X-Assistant-Text"

	fieldAudio         = "audio"
	fieldCandidateID   = "candidate_id"
	fieldQuestionIndex = "questionIndex"
	fieldMentorData    = "mentorData"

	defaultAudioName = "recording.webm"
	defaultTimeout   = 60 * time.Second
	maxLogBody       = 300
)

// ErrNoWebhook is returned when the client has no webhook URL.
var ErrNoWebhook = errors.New("mentor webhook url is not configured")

// Turn is one recorded answer sent to the mentor.
type Turn struct {
	Audio         io.Reader
	AudioName     string
	CandidateID   string
	QuestionIndex int
	Mentor        catalog.Mentor
}

// Reply is the mentor's answer: speech plus its transcript.
type Reply struct {
	Audio       []byte
	ContentType string
	Text        string
}

// WebhookError carries the status and body of a failed webhook call.
type WebhookError struct {
	StatusCode int
	Body       string
}

func (e *WebhookError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return fmt.Sprintf("mentor webhook failed with status %d: %s", e.StatusCode, body)
	}
	return fmt.Sprintf("mentor webhook failed with status %d", e.StatusCode)
}

type Client struct {
	logger *zap.Logger

	HTTPClient *http.Client
	WebhookURL string
	RequestID  string
}

func NewClient(webhookURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		logger:     logger,
		WebhookURL: strings.TrimSpace(webhookURL),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Enabled reports whether a webhook is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.WebhookURL != ""
}

// Send uploads one turn as multipart form data and waits for the reply.
func (c *Client) Send(ctx context.Context, turn Turn) (*Reply, error) {
	if !c.Enabled() {
		return nil, ErrNoWebhook
	}
	if turn.Audio == nil {
		return nil, errors.New("audio is required")
	}

	body, formType, err := encodeTurn(turn)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebhookURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", formType)
	req.Header.Set("Accept", "audio/mpeg")
	if c.RequestID != "" {
		req.Header.Set("X-Request-ID", c.RequestID)
	}

	c.logger.Debug("sending mentor turn",
		zap.String("mentor", turn.Mentor.ID),
		zap.String("candidate_id", turn.CandidateID),
		zap.Int("question_index", turn.QuestionIndex),
		zap.Int("body_size", body.Len()),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send mentor turn: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read mentor reply: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("mentor webhook error",
			zap.Int("status", resp.StatusCode),
			zap.String("body_preview", utils.TruncateForLog(string(data), maxLogBody)),
		)
		return nil, &WebhookError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	reply := &Reply{
		Audio:       data,
		ContentType: contentType,
		Text:        decodeHeaderText(resp.Header.Get(HeaderAssistantText)),
	}

	c.logger.Debug("got mentor reply",
		zap.Int("audio_size", len(reply.Audio)),
		zap.String("text_preview", utils.TruncateForLog(reply.Text, maxLogBody)),
	)

	return reply, nil
}

func encodeTurn(turn Turn) (*bytes.Buffer, string, error) {
	mentorData, err := json.Marshal(turn.Mentor)
	if err != nil {
		return nil, "", fmt.Errorf("encode mentor data: %w", err)
	}

	name := strings.TrimSpace(turn.AudioName)
	if name == "" {
		name = defaultAudioName
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldAudio, filepath.Base(name)))
	header.Set("Content-Type", "audio/webm")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, turn.Audio); err != nil {
		return nil, "", fmt.Errorf("read audio: %w", err)
	}

	fields := [][2]string{
		{fieldCandidateID, turn.CandidateID},
		{fieldQuestionIndex, strconv.Itoa(turn.QuestionIndex)},
		{fieldMentorData, string(mentorData)},
	}
	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// decodeHeaderText undoes the percent-encoding some webhook runtimes apply
// to non-ASCII header values.
func decodeHeaderText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return strings.TrimSpace(decoded)
	}
	return raw
}
