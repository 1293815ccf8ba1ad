package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/serranom/plusvalia"
	"github.com/serranom/plusvalia/docs"
	"github.com/serranom/plusvalia/renderer"
	"google.golang.org/genai"
)

// NewAsesor builds the fiscal advisor expert. Its tools read the user's
// journal and compute the same reports the CLI renders, so every figure it
// quotes comes from the engine, never from the model.
func NewAsesor() *Expert {
	lib := []Function{taxReportFn, holdingsFn, topicFn}
	return &Expert{
		Name: "Asesor",
		Description: `A Spanish crypto tax advisor. Knows the user's transaction
		journal and how FIFO matching, the savings-income brackets and the
		Modelo 720 threshold apply to it.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: declarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a Spanish crypto tax advisor (asesor fiscal). The user holds
			cryptocurrencies across several platforms and wants to understand the
			tax consequences.

			Never compute gains, tax or holdings yourself: always call the tools,
			which replay the user's journal with the FIFO engine, and explain
			their output. Use the documentation tool to ground your explanations
			of the rules. Answer in the user's language, figures in euro.

			You inform, you do not file: recommend a professional asesor for the
			actual declaration.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": output}}
}

var taxReportFn = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "TaxReport",
		Description: `TaxReport computes the annual capital-gains report for a tax
		year: realized gains per asset under FIFO, the progressive tax due,
		staking income, open holdings and fiat movements.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"year": {
					Type:        genai.TypeInteger,
					Description: "The tax year, e.g. 2025.",
				},
			},
			Required: []string{"year"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted annual tax report.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		year, err := parseYear(args)
		if err != nil {
			return failure(id, "TaxReport", err)
		}
		journal, err := decodeJournal()
		if err != nil {
			return failure(id, "TaxReport", err)
		}
		engine := &plusvalia.Engine{}
		report := plusvalia.NewTaxReport(journal, engine, year)
		return success(id, "TaxReport", renderer.TaxReportMarkdown(report))
	},
}

var holdingsFn = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Holdings",
		Description: `Holdings replays the whole journal and lists the open
		positions per asset with their remaining quantity and cost basis.`,
		Parameters: &genai.Schema{Type: genai.TypeObject},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of open positions.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		journal, err := decodeJournal()
		if err != nil {
			return failure(id, "Holdings", err)
		}
		engine := &plusvalia.Engine{}
		res := engine.Replay(journal.Transactions)
		return success(id, "Holdings", renderer.HoldingsSection(plusvalia.Holdings(res.Ledger)))
	},
}

var topicFn = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Topic",
		Description: `Topic returns the documentation for one of the rule topics:
		fifo, brackets, fee-policy, transfers, modelo-720. Use "*" for all.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "The topic name.",
				},
			},
			Required: []string{"name"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The topic's markdown documentation.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		name, ok := args["name"].(string)
		if !ok {
			return failure(id, "Topic", fmt.Errorf("argument 'name' is not a string but %T", args["name"]))
		}
		doc, err := docs.GetTopic(name)
		if err != nil {
			return failure(id, "Topic", err)
		}
		return success(id, "Topic", doc)
	},
}

func parseYear(args map[string]any) (int, error) {
	iyear, ok := args["year"]
	if !ok {
		return 0, fmt.Errorf("argument 'year' is required")
	}
	// genai delivers integers as float64
	fyear, ok := iyear.(float64)
	if !ok {
		return 0, fmt.Errorf("argument 'year' is not a number but %T", iyear)
	}
	return int(fyear), nil
}

// decodeJournal reads the default journal file, empty when missing.
func decodeJournal() (*plusvalia.Journal, error) {
	journalFile := "journal.jsonl"
	f, err := os.Open(journalFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return plusvalia.NewJournal(), nil
		}
		return nil, fmt.Errorf("could not open journal file %q: %w", journalFile, err)
	}
	defer f.Close()
	journal, err := plusvalia.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal file %q: %w", journalFile, err)
	}
	return journal, nil
}
