/*
Package ai summarizes a company's announcements with the Gemini API.
*/
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/shanehull/corpactions/internal/types"
)

type CorporateAction struct {
	Category string `json:"category"`
	Details  string `json:"details"`
}

type Analysis struct {
	Summary []string          `json:"summary"`
	Actions []CorporateAction `json:"corporate_actions"`
}

var ErrNoAnnouncements = errors.New("no announcements to summarize")

func Summarize(ctx context.Context, apiKey, modelName string, company types.CompanyRef, records []types.Announcement) (*Analysis, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if len(records) == 0 {
		return nil, ErrNoAnnouncements
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(company, records), genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    getResponseSchema(),
		Tools: []*genai.Tool{
			{
				URLContext:   &genai.URLContext{},
				GoogleSearch: &genai.GoogleSearch{},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	return parseAnalysis(resp.Text())
}

func parseAnalysis(respText string) (*Analysis, error) {
	var analysis Analysis
	if err := json.Unmarshal([]byte(respText), &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w. Raw text: %s", err, respText)
	}
	return &analysis, nil
}

func getResponseSchema() *genai.Schema {
	actionSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {Type: genai.TypeString, Description: "One of the defined corporate action categories."},
			"details":  {Type: genai.TypeString, Description: "Amounts, ratios and dates of the action."},
		},
		Required: []string{"category", "details"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3-5 concise bullet points summarizing the announcements.",
			},
			"corporate_actions": {
				Type:        genai.TypeArray,
				Items:       actionSchema,
				Description: "Corporate actions identified in the announcements.",
			},
		},
		Required: []string{"summary", "corporate_actions"},
	}
}
