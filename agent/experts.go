package agent

import (
	"context"
	"fmt"

	"github.com/etnz/settlement"
	"github.com/etnz/settlement/date"
	"github.com/etnz/settlement/docs"
	"github.com/etnz/settlement/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expect from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand this period's settlement report: how each trade
			was converted to the domestic currency, which positions were closed and with what result,
			and whether the declared balances reconcile.

			Devise a plan of questions to ask each expert and come up with the best response to the
			user's request.

			The user will assume that you know the report already, check it first to understand
			what tickers it covers.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounded on Google Search, for questions
// the report cannot answer.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher,
		very well aware of financial markets, brokers, currencies and regulations,
		and of the latest news about companies and funds.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert researcher, you can search and find about anything related to
			financial institutions, companies, markets, currencies etc. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert that owns this period's settlement report.
// Its tools answer from the report and rate table in memory.
func NewAnalyst(report *settlement.Report, rates *settlement.RateTable) *Expert {
	lib := []Function{
		summaryTool(report),
		closedTool(report),
		tradesTool(report),
		checksTool(report),
		rateTool(rates),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It has this period's full settlement report loaded:
		settled trades, position summary, closed positions and balance checks.
		Ask the Analyst anything about the figures of the report.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's settlement report.
				You know how to use the Tools to extract relevant figures from the report.
				You are part of a team of experts, yours is everything about this period's
				settled trades. They might ask you questions about the report, pardon their
				approximative language and figure out what they meant.

				Use the available tools to get information about the report
				  - settled trades and their rates
				  - per ticker balances and realized results
				  - closed positions
				  - balance checks against the declared balances
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func summaryTool(report *settlement.Report) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "PositionSummary",
			Description: `PositionSummary lists every ticker traded over the period, with its end of
			period share balance and its realized result in domestic currency.
			A negative balance means more shares were sold than bought.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table with one row per ticker.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return respond(id, "PositionSummary", renderer.SummaryMarkdown(report.Summary), nil)
		},
	}
}

func closedTool(report *settlement.Report) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ClosedPositions",
			Description: `ClosedPositions lists every position whose share balance returned to zero
			over the period, with its buys, sells, commissions and net result in domestic currency,
			and a grand total row.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table with one row per closed position plus a total row.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return respond(id, "ClosedPositions", renderer.ClosedMarkdown(report.Closed), nil)
		},
	}
}

func tradesTool(report *settlement.Report) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "SettledTrades",
			Description: `SettledTrades lists the settled trades of the period, one row per trade,
			with the applicable rate and the converted amount, commission and net result.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker": {
						Type:        genai.TypeString,
						Description: "Only list trades for this ticker. All trades by default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table with one row per settled trade.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			trades := report.Trades
			if ticker, ok := args["ticker"].(string); ok && ticker != "" {
				filtered := make([]settlement.SettledTrade, 0, len(trades))
				for _, t := range trades {
					if t.Ticker == ticker {
						filtered = append(filtered, t)
					}
				}
				trades = filtered
			}
			return respond(id, "SettledTrades", renderer.TradesMarkdown(trades), nil)
		},
	}
}

func checksTool(report *settlement.Report) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "BalanceChecks",
			Description: `BalanceChecks compares the computed end of period balance of each ticker
			against the balance the broker declared, and tells which tickers are insufficient.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table with one row per ticker.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			if report.Checks == nil {
				return respond(id, "BalanceChecks", "", fmt.Errorf("no declared balances were provided for this run"))
			}
			return respond(id, "BalanceChecks", renderer.ChecksMarkdown(report.Checks), nil)
		},
	}
}

func rateTool(rates *settlement.RateTable) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "RateOn",
			Description: `RateOn returns the official rate applicable on a day: the latest
			published rate on or before it.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type: genai.TypeString,
						Description: `The day to look the rate up for. Today is the default.
						Otherwise it uses the YYYY-MM-DD format:

						` + must(docs.GetTopic("dates")),
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The day and its applicable rate.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			day, err := parseDate(args)
			if err != nil {
				return respond(id, "RateOn", "", err)
			}
			rate, err := rates.RateOn(day)
			if err != nil {
				return respond(id, "RateOn", "", err)
			}
			return respond(id, "RateOn", fmt.Sprintf("%s: %s", day, rate), nil)
		},
	}
}

func parseDate(args map[string]any) (date.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return date.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return date.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	day, err := date.Parse(sdate)
	if err != nil {
		return date.Today(), fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the date format\n\n%s ", sdate, must(docs.GetTopic("dates")))
	}

	return day, nil
}
