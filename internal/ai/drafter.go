package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Sraju03/editor-sub000/internal/models"
)

// Drafter produces regulatory text for the submission wizard and the
// document editor.
type Drafter struct {
	gw    Gateway
	model string
}

func NewDrafter(gw Gateway, model string) *Drafter {
	return &Drafter{gw: gw, model: model}
}

// SuggestIntendedUse drafts an intended-use statement from the product
// code, device category and an optional predicate name.
func (d *Drafter) SuggestIntendedUse(ctx context.Context, productCode, deviceCategory, predicateName string) (string, error) {
	if productCode == "" || deviceCategory == "" {
		return "", errors.New("product code and device category are required")
	}

	resp, err := d.gw.Complete(ctx, Request{
		Model: d.model,
		Messages: []Message{
			{Role: "system", Content: intendedUsePrompt(productCode, deviceCategory, predicateName)},
			{Role: "user", Content: "Generate the Intended Use Statement."},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("intended use draft: %w", err)
	}

	slog.Info("drafted intended use",
		"product_code", productCode,
		"tokens", resp.TotalTokens,
		"cost_usd", resp.CostUSD,
	)
	return strings.TrimSpace(resp.Content), nil
}

// SuggestPredicates asks for up to four cleared predicate candidates and
// parses the structured response.
func (d *Drafter) SuggestPredicates(ctx context.Context, productCode, description string) ([]models.PredicateDevice, error) {
	if productCode == "" {
		return nil, errors.New("product code is required")
	}

	resp, err := d.gw.Complete(ctx, Request{
		Model: d.model,
		Messages: []Message{
			{Role: "user", Content: predicatePrompt(productCode, description)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("predicate suggestion: %w", err)
	}

	devices, err := parsePredicates(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("predicate suggestion: %w", err)
	}
	if len(devices) > 4 {
		devices = devices[:4]
	}
	return devices, nil
}

// DraftSection generates or edits a named submission section.
func (d *Drafter) DraftSection(ctx context.Context, guideline, sectionInput string) (string, error) {
	if sectionInput == "" {
		return "", errors.New("section input is required")
	}

	resp, err := d.gw.Complete(ctx, Request{
		Model: d.model,
		Messages: []Message{
			{Role: "user", Content: sectionDraftPrompt(guideline, sectionInput)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("section draft: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// RewriteSelection rewrites a user-selected text span per an instruction.
func (d *Drafter) RewriteSelection(ctx context.Context, guideline, selectedText, instruction string) (string, error) {
	if selectedText == "" || instruction == "" {
		return "", errors.New("selected text and instruction are required")
	}

	resp, err := d.gw.Complete(ctx, Request{
		Model: d.model,
		Messages: []Message{
			{Role: "user", Content: rewritePrompt(guideline, selectedText, instruction)},
		},
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("selection rewrite: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// parsePredicates extracts the device array from a completion that may
// wrap the JSON in prose or a code fence.
func parsePredicates(content string) ([]models.PredicateDevice, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return nil, errors.New("no JSON array in response")
	}

	var devices []models.PredicateDevice
	if err := json.Unmarshal([]byte(content[start:end+1]), &devices); err != nil {
		return nil, fmt.Errorf("decode devices: %w", err)
	}

	// Drop entries without the fields the wizard needs.
	out := devices[:0]
	for _, dev := range devices {
		if dev.Name == "" || dev.KNumber == "" {
			continue
		}
		out = append(out, dev)
	}
	return out, nil
}
