package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sgladkov2017/currency-converter-agent/internal/currencies"
	"github.com/sgladkov2017/currency-converter-agent/internal/logger"
	"github.com/sgladkov2017/currency-converter-agent/internal/models"
)

// ConversionExtractor parses raw text into structured conversion requests.
type ConversionExtractor interface {
	Extract(text string) []models.ConversionRequest
}

// ModelResolver interprets text the extractor could not.
type ModelResolver interface {
	Resolve(ctx context.Context, text string, history []models.Message) (*Resolution, error)
}

// RateResolver resolves one currency pair to a rate.
type RateResolver interface {
	GetRate(ctx context.Context, fromCurrency, toCurrency, date string) (float64, error)
}

// ConversationStore owns per-session message history.
type ConversationStore interface {
	GetOrCreate(sessionID string) string
	Append(sessionID, role, text string)
	History(sessionID string) []models.Message
}

// CurrencyLister lists supported currency codes with display names.
type CurrencyLister interface {
	ListCurrencies(ctx context.Context) (map[string]string, error)
}

// KafkaWriter defines a Kafka writer abstraction for conversion events.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

const publishTimeout = 5 * time.Second

// ChatService is the conversion orchestrator: it arbitrates between the
// direct extraction path and the model fallback, fans rate lookups out
// concurrently, and merges results into one reply per user turn.
type ChatService struct {
	extractor     ConversionExtractor
	resolver      ModelResolver
	rates         RateResolver
	conversations ConversationStore
	lister        CurrencyLister
	kafkaWriter   KafkaWriter
	rateTimeout   time.Duration
}

// NewChatService creates a new orchestrator. lister and kafkaWriter may be
// nil; the currency listing then comes from the static table and event
// publishing is disabled.
func NewChatService(
	extractor ConversionExtractor,
	resolver ModelResolver,
	rates RateResolver,
	conversations ConversationStore,
	lister CurrencyLister,
	kafkaWriter KafkaWriter,
	rateTimeout time.Duration,
) *ChatService {
	return &ChatService{
		extractor:     extractor,
		resolver:      resolver,
		rates:         rates,
		conversations: conversations,
		lister:        lister,
		kafkaWriter:   kafkaWriter,
		rateTimeout:   rateTimeout,
	}
}

// Handle processes one user turn and returns the reply text and the
// (possibly newly generated) session id. Every failure is rendered into the
// reply as plain language; nothing here is fatal.
func (svc *ChatService) Handle(ctx context.Context, text, sessionID string) (string, string) {
	sid := svc.conversations.GetOrCreate(sessionID)

	var reply string
	if reqs := svc.extractor.Extract(text); len(reqs) > 0 {
		reply = svc.convertAll(ctx, reqs)
	} else {
		reply = svc.resolveViaModel(ctx, text, sid)
	}

	svc.conversations.Append(sid, models.RoleUser, text)
	svc.conversations.Append(sid, models.RoleAssistant, reply)
	return reply, sid
}

func (svc *ChatService) resolveViaModel(ctx context.Context, text, sid string) string {
	res, err := svc.resolver.Resolve(ctx, text, svc.conversations.History(sid))
	switch {
	case err != nil:
		logger.Log.Errorw("fallback resolution failed", "session_id", sid, "error", err)
		return "Sorry, I could not process your request right now. Please try again."
	case res.ListSupported:
		return svc.supportedCurrenciesText(ctx)
	case len(res.Requests) > 0:
		return svc.convertAll(ctx, res.Requests)
	default:
		return res.Text
	}
}

// convertAll dispatches all requests concurrently and joins every lookup
// before formatting. Each lookup carries its own timeout, so one slow pair
// degrades only its own slot. One failure never aborts siblings.
func (svc *ChatService) convertAll(ctx context.Context, reqs []models.ConversionRequest) string {
	results := make(models.ConversionBatch, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req models.ConversionRequest) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, svc.rateTimeout)
			defer cancel()

			rate, err := svc.rates.GetRate(callCtx, req.FromCurrency, req.ToCurrency, req.Date)
			if err != nil {
				results[i] = models.ConversionResult{Request: req, Err: err}
				return
			}
			results[i] = models.ConversionResult{
				Request:         req,
				Rate:            rate,
				ConvertedAmount: req.Amount * rate,
			}
		}(i, req)
	}
	wg.Wait()

	if svc.kafkaWriter != nil {
		go svc.publishBatch(results)
	}

	return formatBatch(results)
}

// publishBatch writes one event per successful conversion, best effort. It
// runs detached from the request, with its own timeout.
func (svc *ChatService) publishBatch(results models.ConversionBatch) {
	msgs := make([]kafka.Message, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		event := models.ConversionEvent{
			EventID:         uuid.New().String(),
			Amount:          res.Request.Amount,
			FromCurrency:    res.Request.FromCurrency,
			ToCurrency:      res.Request.ToCurrency,
			Rate:            res.Rate,
			ConvertedAmount: res.ConvertedAmount,
			RateDate:        res.Request.Date,
			OccurredAt:      time.Now().UTC(),
		}
		value, err := json.Marshal(event)
		if err != nil {
			logger.Log.Errorw("failed to marshal conversion event", "error", err)
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.FromCurrency + ":" + event.ToCurrency),
			Value: value,
		})
	}
	if len(msgs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := svc.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		logger.Log.Errorw("failed to publish conversion events", "count", len(msgs), "error", err)
	}
}

func (svc *ChatService) supportedCurrenciesText(ctx context.Context) string {
	listing := make(map[string]string)
	if svc.lister != nil {
		m, err := svc.lister.ListCurrencies(ctx)
		if err != nil {
			logger.Log.Warnw("currency listing failed, using static table", "error", err)
		} else {
			listing = m
		}
	}
	if len(listing) == 0 {
		for _, info := range currencies.All() {
			listing[info.Code] = info.Name
		}
	}

	codes := make([]string, 0, len(listing))
	for code := range listing {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder
	b.WriteString("Here are the supported currencies:\n")
	for _, code := range codes {
		fmt.Fprintf(&b, "%s - %s\n", code, listing[code])
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatBatch renders results as numbered blocks in extraction order.
func formatBatch(results models.ConversionBatch) string {
	parts := make([]string, 0, len(results))
	for i, res := range results {
		parts = append(parts, fmt.Sprintf("Conversion %d:\n%s", i+1, formatResult(res)))
	}
	return strings.Join(parts, "\n\n")
}

func formatResult(res models.ConversionResult) string {
	req := res.Request
	if res.Err != nil {
		return failureText(req, res.Err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s = %s %s\n",
		formatAmount(req.Amount, -1), req.FromCurrency,
		formatAmount(res.ConvertedAmount, currencies.Precision(req.ToCurrency)), req.ToCurrency)
	fmt.Fprintf(&b, "Rate: 1 %s = %s %s", req.FromCurrency, formatAmount(res.Rate, 6), req.ToCurrency)
	if req.Date != "" {
		fmt.Fprintf(&b, "\nRate date: %s", req.Date)
	}
	return b.String()
}

// failureText names the failure in plain language; internal codes and
// technical detail stay out of replies.
func failureText(req models.ConversionRequest, err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedCurrency):
		return fmt.Sprintf("Could not convert %s to %s: one of the currencies is not supported.",
			req.FromCurrency, req.ToCurrency)
	case errors.Is(err, ErrNoRateForDate):
		return fmt.Sprintf("Could not convert %s to %s: no exchange rate is available for %s.",
			req.FromCurrency, req.ToCurrency, req.Date)
	default:
		return fmt.Sprintf("Could not convert %s to %s: the exchange-rate service is temporarily unavailable. Please try again.",
			req.FromCurrency, req.ToCurrency)
	}
}

func formatAmount(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}
