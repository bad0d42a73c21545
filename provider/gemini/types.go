package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/campus-ai/tutor/core/chat"
)

// Wire types for the generateContent family of endpoints. Only the fields
// the tutor consumes are mapped; unknown fields are ignored on decode.

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type tool struct {
	GoogleSearch *googleSearch `json:"google_search,omitempty"`
}

// googleSearch enables the provider-side web search tool. The declaration
// is an empty object on the wire.
type googleSearch struct{}

type generateRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
	Tools             []tool    `json:"tools,omitempty"`
}

type generateChunk struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content           *content           `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *webSource `json:"web"`
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("gemini: %s (%d %s)", e.Message, e.Code, e.Status)
}

// parseChunk decodes one streamed response chunk into a StreamEvent.
// Text deltas from all parts of the first candidate are concatenated;
// grounding chunks without web metadata are skipped. An API error embedded
// in the chunk body is returned as an error.
func parseChunk(data []byte) (chat.StreamEvent, error) {
	var chunk generateChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return chat.StreamEvent{}, fmt.Errorf("failed to parse response chunk: %w", err)
	}

	if chunk.Error != nil {
		return chat.StreamEvent{}, chunk.Error
	}

	var event chat.StreamEvent
	if len(chunk.Candidates) == 0 {
		return event, nil
	}

	cand := chunk.Candidates[0]
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			event.Text += p.Text
		}
	}

	if cand.GroundingMetadata != nil {
		for _, gc := range cand.GroundingMetadata.GroundingChunks {
			if gc.Web == nil {
				continue
			}
			event.Sources = append(event.Sources, chat.Source{
				URI:   gc.Web.URI,
				Title: gc.Web.Title,
			})
		}
	}

	return event, nil
}
