// Package gemini implements the AI collaborator ports against the Google
// generative AI API. Prompts are embedded text templates; responses are
// fenced YAML parsed and validated before anything reaches the game.
package gemini

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"civitech/internal/app/ports"
	"civitech/internal/domain/sim"
)

//go:embed prompts/generate_scenario.txt
var generateScenarioPrompt string

//go:embed prompts/advise.txt
var advisePrompt string

//go:embed prompts/analyze.txt
var analyzePrompt string

const DefaultModel = "gemini-2.5-flash"

type Engine struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func New(ctx context.Context, apiKey, modelName string) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Engine{client: client, model: client.GenerativeModel(modelName)}, nil
}

func (e *Engine) Close() error {
	return e.client.Close()
}

var (
	_ ports.ScenarioGenerator = (*Engine)(nil)
	_ ports.Advisor           = (*Engine)(nil)
	_ ports.Analyzer          = (*Engine)(nil)
)

func (e *Engine) prompt(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Engine) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type")
	}
	return string(text), nil
}

func historyText(previous []sim.DecisionRecord) string {
	var b strings.Builder
	for _, r := range previous {
		fmt.Fprintf(&b, "- scenario %q, chose %q", r.ScenarioID, r.DecisionID)
		if r.Auto {
			b.WriteString(" (timed out, chosen at random)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Generate asks the model for one follow-up scenario. Malformed output is
// reported as ErrGenerationFailed so the caller can end the game cleanly.
func (e *Engine) Generate(ctx context.Context, previous []sim.DecisionRecord, scores sim.ScoreVector) (sim.Scenario, error) {
	prompt, err := e.prompt("generate_scenario", generateScenarioPrompt, struct {
		History string
		Scores  sim.ScoreVector
	}{History: historyText(previous), Scores: scores})
	if err != nil {
		return sim.Scenario{}, fmt.Errorf("%w: %v", ports.ErrGenerationFailed, err)
	}
	raw, err := e.complete(ctx, prompt)
	if err != nil {
		return sim.Scenario{}, fmt.Errorf("%w: %v", ports.ErrGenerationFailed, err)
	}
	scenario, err := parseScenario(raw)
	if err != nil {
		return sim.Scenario{}, fmt.Errorf("%w: %v", ports.ErrGenerationFailed, err)
	}
	return scenario, nil
}

// Advise returns a short hint for the scenario the player is facing.
func (e *Engine) Advise(ctx context.Context, scenario sim.Scenario, scores sim.ScoreVector, previous []sim.DecisionRecord) (ports.Advice, error) {
	var options strings.Builder
	for _, d := range scenario.Decisions {
		fmt.Fprintf(&options, "- %s: %s\n", d.ID, d.Title)
	}
	prompt, err := e.prompt("advise", advisePrompt, struct {
		Title   string
		Context string
		Options string
		History string
		Scores  sim.ScoreVector
	}{
		Title:   scenario.Title,
		Context: scenario.Context,
		Options: options.String(),
		History: historyText(previous),
		Scores:  scores,
	})
	if err != nil {
		return ports.Advice{}, err
	}
	raw, err := e.complete(ctx, prompt)
	if err != nil {
		return ports.Advice{}, err
	}
	return parseAdvice(raw)
}

// Analyze reviews a finished play-through.
func (e *Engine) Analyze(ctx context.Context, decisions []sim.DecisionRecord, finalScores sim.ScoreVector, scenarios []sim.Scenario) (ports.Analysis, error) {
	var played strings.Builder
	for _, s := range scenarios {
		fmt.Fprintf(&played, "- %s (%s)\n", s.Title, s.Source)
	}
	prompt, err := e.prompt("analyze", analyzePrompt, struct {
		History   string
		Scenarios string
		Scores    sim.ScoreVector
		Total     int
	}{
		History:   historyText(decisions),
		Scenarios: played.String(),
		Scores:    finalScores,
		Total:     finalScores.Aggregate(),
	})
	if err != nil {
		return ports.Analysis{}, err
	}
	raw, err := e.complete(ctx, prompt)
	if err != nil {
		return ports.Analysis{}, err
	}
	return parseAnalysis(raw)
}
