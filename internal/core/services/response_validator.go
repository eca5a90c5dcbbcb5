package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// entriesKeys are the accepted names for the entries array in an extraction
// payload, matched case-insensitively.
var entriesKeys = []string{"entries", "ecritures"}

// currencyPlaceholders are extraction artifacts that must be treated as an
// absent currency, compared after trimming and uppercasing.
var currencyPlaceholders = map[string]struct{}{
	"":          {},
	"NAN":       {},
	"NULL":      {},
	"UNDEFINED": {},
	"N/A":       {},
	"NONE":      {},
	"UNKNOWN":   {},
}

var rowDateLayouts = []string{"2006-01-02", "02/01/2006", "2006/01/02", "02-01-2006"}

// ResponseValidator checks extraction responses structurally and converts them
// into typed rows. Validation is all-or-nothing: one bad row fails the whole
// response.
type ResponseValidator struct{}

func NewResponseValidator() *ResponseValidator {
	return &ResponseValidator{}
}

// IsValid reports whether the response would pass full validation.
func (v *ResponseValidator) IsValid(resp *dto.ExtractionResponse) bool {
	_, err := v.Validate(resp)
	return err == nil
}

// Validate parses and validates an extraction response, returning the typed
// document on success. Every failure wraps apperrors.ErrValidation.
func (v *ResponseValidator) Validate(resp *dto.ExtractionResponse) (*dto.ExtractedDocument, error) {
	if resp == nil || !resp.Success {
		return nil, fmt.Errorf("%w: extraction reported failure", apperrors.ErrValidation)
	}
	if strings.TrimSpace(resp.Payload) == "" {
		return nil, fmt.Errorf("%w: extraction payload is empty", apperrors.ErrValidation)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(resp.Payload), &payload); err != nil {
		return nil, fmt.Errorf("%w: extraction payload is not valid JSON: %s", apperrors.ErrValidation, err.Error())
	}

	rawEntries, ok := findKey(payload, entriesKeys...)
	if !ok {
		return nil, fmt.Errorf("%w: extraction payload has no entries array", apperrors.ErrValidation)
	}

	var wireEntries []dto.ExtractionEntry
	if err := json.Unmarshal(rawEntries, &wireEntries); err != nil {
		return nil, fmt.Errorf("%w: entries field is not an array of entries: %s", apperrors.ErrValidation, err.Error())
	}
	if len(wireEntries) == 0 {
		return nil, fmt.Errorf("%w: extraction payload has no entries", apperrors.ErrValidation)
	}

	rows := make([]dto.ExtractedRow, 0, len(wireEntries))
	for i, entry := range wireEntries {
		row, err := validateEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %s", apperrors.ErrValidation, i, err.Error())
		}
		rows = append(rows, *row)
	}

	doc := &dto.ExtractedDocument{Rows: rows}
	if rawInvoice, ok := findKey(payload, "invoice", "facture"); ok {
		doc.Invoice = parseInvoiceBlock(rawInvoice)
	}
	return doc, nil
}

// findKey looks up the first of the candidate keys in the payload, ignoring
// case.
func findKey(payload map[string]json.RawMessage, candidates ...string) (json.RawMessage, bool) {
	for _, candidate := range candidates {
		for key, raw := range payload {
			if strings.EqualFold(key, candidate) {
				return raw, true
			}
		}
	}
	return nil, false
}

func validateEntry(entry dto.ExtractionEntry) (*dto.ExtractedRow, error) {
	required := []struct {
		name  string
		value string
	}{
		{"date", entry.Date},
		{"journalCode", entry.JournalCode},
		{"journalLabel", entry.JournalLabel},
		{"invoiceNumber", entry.InvoiceNumber},
		{"accountNumber", entry.AccountNumber},
		{"accountLabel", entry.AccountLabel},
		{"entryLabel", entry.EntryLabel},
		{"currency", entry.Currency},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return nil, fmt.Errorf("missing required field %q", field.name)
		}
	}

	date, err := parseRowDate(entry.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", entry.Date)
	}
	debit, err := parseWireDecimal(entry.Debit)
	if err != nil {
		return nil, fmt.Errorf("invalid debit %q", entry.Debit)
	}
	credit, err := parseWireDecimal(entry.Credit)
	if err != nil {
		return nil, fmt.Errorf("invalid credit %q", entry.Credit)
	}

	return &dto.ExtractedRow{
		Date:          date,
		JournalCode:   strings.TrimSpace(entry.JournalCode),
		JournalLabel:  strings.TrimSpace(entry.JournalLabel),
		InvoiceNumber: strings.TrimSpace(entry.InvoiceNumber),
		AccountNumber: strings.TrimSpace(entry.AccountNumber),
		AccountLabel:  strings.TrimSpace(entry.AccountLabel),
		EntryLabel:    strings.TrimSpace(entry.EntryLabel),
		Currency:      strings.TrimSpace(entry.Currency),
		Debit:         debit,
		Credit:        credit,
	}, nil
}

// parseInvoiceBlock parses the optional invoice block leniently. A block
// without a parsable date or TTC total is treated as absent.
func parseInvoiceBlock(raw json.RawMessage) *dto.ExtractedInvoice {
	var wire dto.ExtractionInvoice
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil
	}

	date, err := parseRowDate(wire.InvoiceDate)
	if err != nil {
		return nil
	}
	ttc, err := parseWireDecimal(wire.TotalTTC)
	if err != nil {
		return nil
	}

	invoice := &dto.ExtractedInvoice{
		InvoiceNumber: strings.TrimSpace(wire.InvoiceNumber),
		InvoiceDate:   date,
		TotalTTC:      ttc,
	}
	if taxRate, err := parseWireDecimal(wire.TaxRate); err == nil {
		invoice.TaxRate = taxRate
	}
	if ht, err := parseWireDecimal(wire.TotalHT); err == nil && strings.TrimSpace(wire.TotalHT) != "" {
		invoice.TotalHT = ht
		invoice.HasHT = true
	}
	if tva, err := parseWireDecimal(wire.TotalTVA); err == nil && strings.TrimSpace(wire.TotalTVA) != "" {
		invoice.TotalTVA = tva
		invoice.HasTVA = true
	}
	return invoice
}

func parseRowDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range rowDateLayouts {
		if date, err := time.Parse(layout, trimmed); err == nil {
			return date.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", value)
}

// parseWireDecimal parses a numeric-as-string amount, tolerating a decimal
// comma and surrounding whitespace. Non-finite tokens are rejected.
func parseWireDecimal(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	switch strings.ToLower(cleaned) {
	case "nan", "inf", "+inf", "-inf", "infinity", "-infinity":
		return decimal.Decimal{}, fmt.Errorf("non-finite amount %q", value)
	}
	return decimal.NewFromString(cleaned)
}

// NormalizeCurrencyToken uppercases and trims an extracted currency code,
// returning the empty string for any placeholder artifact.
func NormalizeCurrencyToken(code string) string {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if _, isPlaceholder := currencyPlaceholders[normalized]; isPlaceholder {
		return ""
	}
	return normalized
}

// NormalizeBankPayload unwraps a bank statement payload enveloped under a
// "data" object so both flat and enveloped shapes validate identically.
func NormalizeBankPayload(payload string) string {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &outer); err != nil {
		return payload
	}
	rawData, ok := findKey(outer, "data")
	if !ok {
		return payload
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal(rawData, &inner); err != nil {
		return payload
	}
	if _, ok := findKey(inner, entriesKeys...); !ok {
		return payload
	}
	return string(rawData)
}
