package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client talks to the external speech-analysis API: one multipart upload that
// transcribes the audio, then one JSON call that turns the transcription and
// linguistic stats into feedback.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// AnalysisTimeout bounds the transcribe-then-feedback sequence. Transcribing
// a recording routinely takes tens of seconds, far past the request-wide
// deadline the middleware puts on ordinary handlers.
const AnalysisTimeout = 90 * time.Second

// AnalysisContext derives a context for the external call sequence that keeps
// the request's values but not its deadline, with AnalysisTimeout as the
// budget instead.
func AnalysisContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), AnalysisTimeout)
}

type ProcessAudioResult struct {
	Transcription string          `json:"transcription"`
	SpacyStats    json.RawMessage `json:"spacy_stats"`
}

type Feedback struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// ProcessAudio uploads one audio recording plus the text the student was
// asked to read and returns the transcription with its linguistic stats.
func (c *Client) ProcessAudio(ctx context.Context, filename string, audio io.Reader, expectedText string) (*ProcessAudioResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, err
	}
	if err := writer.WriteField("expected_text", expectedText); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/process-audio", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result ProcessAudioResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeFeedback asks the API to grade one attempt.
func (c *Client) AnalyzeFeedback(ctx context.Context, studentID, attemptID, speechText string, spacyStats json.RawMessage) (*Feedback, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"student_id":  studentID,
		"attempt_id":  attemptID,
		"speech_text": speechText,
		"spacy_stats": spacyStats,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/analyze-feedback", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result struct {
		Feedback Feedback `json:"feedback"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result.Feedback, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("speech api %s: status %d: %s", req.URL.Path, resp.StatusCode, snippet)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
