package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/sgladkov2017/currency-converter-agent/internal/logger"
	"github.com/sgladkov2017/currency-converter-agent/internal/models"
)

// ModelCaller is the slice of the language-model client the resolver needs.
type ModelCaller interface {
	GenerateContent(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Resolution is the outcome of one model fallback turn. Either Requests is
// non-empty, or ListSupported is set, or Text carries the model's direct
// answer.
type Resolution struct {
	Requests      []models.ConversionRequest
	ListSupported bool
	Text          string
}

const (
	historyWindow = 10
	retryBackoff  = 2 * time.Second

	systemPrompt = `You are a currency conversion assistant. Use the declared tools to ` +
		`convert currencies, look up historical rates, or list supported currencies. ` +
		`For questions unrelated to currencies, answer briefly and steer the user ` +
		`back to currency topics.`
)

// conversionTools declares the callable schema offered to the model. The
// schema is an external contract: every returned invocation is validated
// against it before a ConversionRequest is constructed.
var conversionTools = &genai.Tool{
	FunctionDeclarations: []*genai.FunctionDeclaration{
		{
			Name:        "convert_currency",
			Description: "Convert an amount from one currency to another using the latest exchange rate.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"amount":        {Type: genai.TypeNumber, Description: "Amount to convert, must be positive"},
					"from_currency": {Type: genai.TypeString, Description: "Source currency, 3-letter ISO code"},
					"to_currency":   {Type: genai.TypeString, Description: "Target currency, 3-letter ISO code"},
				},
				Required: []string{"amount", "from_currency", "to_currency"},
			},
		},
		{
			Name:        "get_supported_currencies",
			Description: "List all supported currency codes with display names.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
		},
		{
			Name:        "get_historical_rate",
			Description: "Get the exchange rate between two currencies on a past date.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date":          {Type: genai.TypeString, Description: "Date in YYYY-MM-DD format"},
					"from_currency": {Type: genai.TypeString, Description: "Source currency, 3-letter ISO code"},
					"to_currency":   {Type: genai.TypeString, Description: "Target currency, 3-letter ISO code"},
				},
				Required: []string{"date", "from_currency", "to_currency"},
			},
		},
	},
}

// FallbackResolver asks the language model to interpret text the extractor
// could not, by offering the conversion schema as callable tools.
type FallbackResolver struct {
	model       ModelCaller
	temperature float32
	maxTokens   int32
	timeout     time.Duration
	now         func() time.Time
}

// NewFallbackResolver creates a new resolver instance.
func NewFallbackResolver(model ModelCaller, temperature float32, maxTokens int32, timeout time.Duration) *FallbackResolver {
	return &FallbackResolver{
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
		now:         time.Now,
	}
}

// Resolve sends text plus recent history to the model and interprets the
// response. Transport failures are retried once after a fixed backoff and
// then surface as ErrProviderUnavailable.
func (r *FallbackResolver) Resolve(ctx context.Context, text string, history []models.Message) (*Resolution, error) {
	contents := r.buildContents(text, history)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Tools:             []*genai.Tool{conversionTools},
		Temperature:       genai.Ptr(r.temperature),
		MaxOutputTokens:   r.maxTokens,
	}

	var resp *genai.GenerateContentResponse
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		resp, err = r.model.GenerateContent(callCtx, contents, cfg)
		cancel()
		if err == nil {
			break
		}
		logger.Log.Warnw("model call failed", "attempt", attempt+1, "error", err)
		if attempt == 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, ctx.Err())
			case <-time.After(retryBackoff):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return r.interpret(resp)
}

func (r *FallbackResolver) buildContents(text string, history []models.Message) []*genai.Content {
	window := history
	if len(window) > historyWindow {
		window = window[len(window)-historyWindow:]
	}

	contents := make([]*genai.Content, 0, len(window)+1)
	for _, m := range window {
		role := genai.Role(genai.RoleUser)
		if m.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return append(contents, genai.NewContentFromText(text, genai.RoleUser))
}

func (r *FallbackResolver) interpret(resp *genai.GenerateContentResponse) (*Resolution, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: empty response", ErrModelResponseMalformed)
	}

	res := &Resolution{}
	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
			continue
		}
		if part.FunctionCall == nil {
			continue
		}
		switch part.FunctionCall.Name {
		case "convert_currency":
			req, err := conversionFromArgs(part.FunctionCall.Args, false, r.now())
			if err != nil {
				return nil, err
			}
			res.Requests = append(res.Requests, req)
		case "get_historical_rate":
			req, err := conversionFromArgs(part.FunctionCall.Args, true, r.now())
			if err != nil {
				return nil, err
			}
			res.Requests = append(res.Requests, req)
		case "get_supported_currencies":
			// Informational response, short-circuits conversion resolution.
			res.Requests = nil
			res.ListSupported = true
			return res, nil
		default:
			return nil, fmt.Errorf("%w: unknown tool %q", ErrModelResponseMalformed, part.FunctionCall.Name)
		}
	}

	if len(res.Requests) == 0 {
		res.Text = strings.TrimSpace(strings.Join(texts, "\n"))
		if res.Text == "" {
			return nil, fmt.Errorf("%w: no tool calls and no text", ErrModelResponseMalformed)
		}
	}
	return res, nil
}

var reCurrencyArg = regexp.MustCompile(`^[A-Za-z]{3}$`)

// conversionFromArgs validates one tool invocation's arguments against the
// declared schema. Historical-rate calls carry no amount; they resolve as a
// one-unit conversion so the reply shows the rate itself.
func conversionFromArgs(args map[string]any, historical bool, now time.Time) (models.ConversionRequest, error) {
	var req models.ConversionRequest

	from, ok := args["from_currency"].(string)
	if !ok || !reCurrencyArg.MatchString(from) {
		return req, fmt.Errorf("%w: bad from_currency %v", ErrModelResponseMalformed, args["from_currency"])
	}
	to, ok := args["to_currency"].(string)
	if !ok || !reCurrencyArg.MatchString(to) {
		return req, fmt.Errorf("%w: bad to_currency %v", ErrModelResponseMalformed, args["to_currency"])
	}
	req.FromCurrency = strings.ToUpper(from)
	req.ToCurrency = strings.ToUpper(to)

	if historical {
		date, ok := args["date"].(string)
		if !ok {
			return req, fmt.Errorf("%w: missing date", ErrModelResponseMalformed)
		}
		d, err := time.Parse("2006-01-02", date)
		if err != nil || d.After(now) {
			return req, fmt.Errorf("%w: bad date %q", ErrModelResponseMalformed, date)
		}
		req.Date = date
		req.Amount = 1
		return req, nil
	}

	amount, ok := args["amount"].(float64)
	if !ok || amount <= 0 {
		return req, fmt.Errorf("%w: bad amount %v", ErrModelResponseMalformed, args["amount"])
	}
	req.Amount = amount
	return req, nil
}
