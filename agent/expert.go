package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Expert represents a chat with a business expert.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask is a simple wrapper on top of Chat.Send to make it simpler for callbacks.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}
	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}

		// Make the callback. No possible error, errors travel back via 'resp'
		resp := e.Library(ctx, part0.FunctionCall)

		// Ask the expert again with the response it asked for
		// until we have a real response.
		return e.Ask(ctx, &genai.Part{FunctionResponse: resp})
	}
	return resp.Candidates[0].Content, nil
}

// Declaration returns the function declaration to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call performs the call of asking this expert.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	d := e.Declaration()

	arg0 := args[d.Parameters.Required[0]]
	question, ok := arg0.(string)
	if !ok {
		return respond(id, d.Name, "", fmt.Errorf("invalid type got %T, expected string", arg0))
	}

	response, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return respond(id, d.Name, "", fmt.Errorf("something went wrong while calling the expert: %w", err))
	}

	r := response.Parts[0].Text
	log.Debug().Str("expert", e.Name).Str("question", question).Str("response", r).Msg("expert consulted")
	return respond(id, d.Name, r, nil)
}

// respond packs a tool result, or its error, into a function response.
func respond(id, name, output string, err error) *genai.FunctionResponse {
	if err != nil {
		return &genai.FunctionResponse{
			ID:   id,
			Name: name,
			Response: map[string]any{
				"error": err.Error(),
			},
		}
	}
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}
