package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/campus-ai/tutor/core/chat"
	"github.com/campus-ai/tutor/stream"
)

// eventBuffer sizes the stream channel. Small: the consumer processes
// events as they arrive and the producer may block between chunks anyway.
const eventBuffer = 8

// conversation carries the multi-turn history for one dialogue. The API is
// stateless, so prior turns are replayed in every request. Not safe for
// concurrent Stream calls; the runtime serializes turns.
type conversation struct {
	client      *Client
	instruction string
	history     []content
}

// Stream sends the prompt and returns the reply as a finite event stream.
// On success the exchanged turns are appended to the conversation history;
// a failed turn leaves the history untouched.
func (c *conversation) Stream(ctx context.Context, prompt string) *stream.Stream[chat.StreamEvent] {
	s := stream.New[chat.StreamEvent](eventBuffer)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, c.client.timeout)
		defer cancel()

		reply, err := c.run(ctx, s, prompt)
		if err != nil {
			s.CloseWithError(err)
			return
		}

		c.history = append(c.history,
			content{Role: "user", Parts: []part{{Text: prompt}}},
			content{Role: "model", Parts: []part{{Text: reply}}},
		)
		s.Close()
	}()

	return s
}

// run performs the HTTP exchange, forwarding each decoded chunk to s.
// Returns the concatenated reply text for history bookkeeping.
func (c *conversation) run(ctx context.Context, s *stream.Stream[chat.StreamEvent], prompt string) (string, error) {
	if c.client.setupErr != nil {
		return "", c.client.setupErr
	}

	reqBody := generateRequest{
		Contents: append(c.history, content{Role: "user", Parts: []part{{Text: prompt}}}),
		Tools:    []tool{{GoogleSearch: &googleSearch{}}},
	}
	if c.instruction != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: c.instruction}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse",
		c.client.baseURL, c.client.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.client.apiKey)

	resp, err := c.client.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if apiErr := parseErrorBody(body); apiErr != nil {
			return "", apiErr
		}
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var reply strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}

		event, err := parseChunk([]byte(data))
		if err != nil {
			return "", err
		}

		reply.WriteString(event.Text)
		if err := s.Send(ctx, event); err != nil {
			return "", err
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("stream read failed: %w", err)
	}

	return reply.String(), nil
}

// parseErrorBody extracts a structured API error from a non-200 response,
// or nil if the body is not in the documented error shape.
func parseErrorBody(body []byte) error {
	var wrapper struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil || wrapper.Error == nil {
		return nil
	}
	return wrapper.Error
}
