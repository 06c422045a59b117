package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/pkg/errs"
	"github.com/aminrz/kharj_bot/pkg/logger"
)

// ErrNoAmountFound happens when a free-text message contains no usable amount.
var ErrNoAmountFound = errs.New(
	"I couldn't find an amount in your message. Include a number, for example: 100 تومن پول نون",
)

// Amounts longer than this are treated as noise, not money.
const maxAmountDigits = 12

var (
	digitRunRegexp     = regexp.MustCompile(`[0-9]+`)
	listIndexRegexp    = regexp.MustCompile(`^\s*[0-9]+\s*[.\x{066B}]\s*`)
	currencyUnitRegexp = regexp.MustCompile(`تومان|تومن|ریال`)

	receivableRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(?:بهم|به\s*من)\s*بدهکار`),
		regexp.MustCompile(`از\s+\S+\s*(?:طلب|می‌گیرم|میگیرم)`),
		regexp.MustCompile(`\S+\s+باید\s*(?:بهم|به\s*من)?\s*بده(?:\s|$)`),
		regexp.MustCompile(`طلب\s*دارم`),
	}

	payableRegexps = []*regexp.Regexp{
		regexp.MustCompile(`باید\s*(?:به\s*\S+\s*)?بدم`),
		regexp.MustCompile(`(?:^|\s)بدهکار(?:م|\s*هستم)(?:\s|$)`),
		regexp.MustCompile(`قرض\s*گرفتم`),
	}

	shorthandPayableRegexp = regexp.MustCompile(
		`^\s*[0-9]+(?:\s*(?:تومان|تومن|ریال))?\s*به\s+\S+\s*$`,
	)

	personAfterBeRegexp     = regexp.MustCompile(`به\s+(\S+)`)
	personAfterAzRegexp     = regexp.MustCompile(`از\s+(\S+)`)
	personBeforeBayadRegexp = regexp.MustCompile(`(\S+)\s+باید`)
)

// Pronouns and filler words that must never be taken for a person name.
var personStopWords = map[string]struct{}{
	"من":    {},
	"تو":    {},
	"او":    {},
	"ما":    {},
	"شما":   {},
	"ایشان": {},
	"بهم":   {},
	"بهت":   {},
	"بهش":   {},
	"اون":   {},
}

var digitNormalizer = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

type parserService struct {
	logger *logger.Logger
}

var _ ParserService = (*parserService)(nil)

// ParserOptions represents input options for a new instance of parser service.
type ParserOptions struct {
	Logger *logger.Logger
}

// NewParser returns a new instance of parser service.
func NewParser(opts *ParserOptions) *parserService {
	return &parserService{
		logger: opts.Logger,
	}
}

func (p parserService) Parse(text string) (*models.ParsedRecord, error) {
	logger := p.logger.With().Str("name", "parserService.Parse").Logger()

	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil, ErrNoAmountFound
	}

	normalized := digitNormalizer.Replace(raw)

	amount, amountSpan, ok := extractAmount(normalized)
	if !ok {
		return nil, ErrNoAmountFound
	}

	kind := p.detectRecordKind(normalized)

	parsed := &models.ParsedRecord{
		Amount:       amount,
		Kind:         kind,
		CurrencyUnit: extractCurrencyUnit(normalized),
		Description:  cleanDescription(normalized, amountSpan),
		Raw:          raw,
	}
	if kind.IsDebt() {
		parsed.Counterparty = extractPerson(normalized)
	}

	logger.Debug().Any("parsed", parsed).Msg("parsed free-text record")
	return parsed, nil
}

// detectRecordKind decides the direction of the record from debt phrasing.
// When the text matches both directions at once the record falls back to a
// plain expense and the ambiguity is logged.
func (p parserService) detectRecordKind(text string) models.RecordKind {
	receivable := matchAny(receivableRegexps, text)
	payable := matchAny(payableRegexps, text)

	switch {
	case receivable && payable:
		p.logger.Warn().Str("text", text).Msg("ambiguous debt direction, falling back to expense")
		return models.ExpenseRecordKind
	case receivable:
		return models.ReceivableRecordKind
	case payable:
		return models.PayableRecordKind
	case shorthandPayableRegexp.MatchString(text):
		return models.PayableRecordKind
	default:
		return models.ExpenseRecordKind
	}
}

func matchAny(regexps []*regexp.Regexp, text string) bool {
	for _, r := range regexps {
		if r.MatchString(text) {
			return true
		}
	}

	return false
}

// extractAmount returns the first digit run that is not a numbered list
// prefix, together with its byte span in the text.
func extractAmount(text string) (string, [2]int, bool) {
	for _, span := range digitRunRegexp.FindAllStringIndex(text, -1) {
		run := text[span[0]:span[1]]
		if len(run) > maxAmountDigits {
			continue
		}
		if isListIndex(text, span) {
			continue
		}

		trimmed := strings.TrimLeft(run, "0")
		if trimmed == "" {
			continue
		}

		return trimmed, [2]int{span[0], span[1]}, true
	}

	return "", [2]int{}, false
}

// isListIndex reports whether a leading digit run is a numbered list prefix
// such as "1. bread" rather than an amount.
func isListIndex(text string, span []int) bool {
	if strings.TrimSpace(text[:span[0]]) != "" {
		return false
	}

	rest := text[span[1]:]
	r, size := utf8.DecodeRuneInString(rest)
	if r != '.' && r != '٫' {
		return false
	}

	// A dot followed by more digits is a decimal separator, not a list index.
	next, _ := utf8.DecodeRuneInString(rest[size:])
	return next < '0' || next > '9'
}

func extractCurrencyUnit(text string) string {
	if unit := currencyUnitRegexp.FindString(text); unit != "" {
		return unit
	}

	return "تومان"
}

// extractPerson picks the counterparty of a debt record from common
// Persian phrasings, skipping pronouns.
func extractPerson(text string) string {
	for _, r := range []*regexp.Regexp{personAfterBeRegexp, personAfterAzRegexp, personBeforeBayadRegexp} {
		match := r.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		candidate := strings.Trim(match[1], ".,!?:؟؛،")
		if candidate == "" || isDigits(candidate) {
			continue
		}
		if _, ok := personStopWords[candidate]; ok {
			continue
		}
		if currencyUnitRegexp.MatchString(candidate) {
			continue
		}

		return candidate
	}

	return ""
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return value != ""
}

// cleanDescription removes the amount, the currency token and a numbered
// list prefix from the text, leaving the human part of the message.
func cleanDescription(text string, amountSpan [2]int) string {
	without := text[:amountSpan[0]] + " " + text[amountSpan[1]:]
	without = currencyUnitRegexp.ReplaceAllString(without, " ")
	without = listIndexRegexp.ReplaceAllString(without, "")

	return strings.Join(strings.Fields(without), " ")
}
