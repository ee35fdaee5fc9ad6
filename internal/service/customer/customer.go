// internal/service/customer/customer.go
package customer

import (
	"fmt"
	"strings"

	"github.com/clementatt/Stripe-customers-import/internal/config"
	"github.com/clementatt/Stripe-customers-import/internal/domain/customer"
	xerrors "github.com/clementatt/Stripe-customers-import/internal/pkg/errors"
)

// metadataFields lists the row fields copied into request metadata, keyed
// by the metadata name the billing provider stores them under.
var metadataFields = []string{
	customer.FieldOrderNumber,
	customer.FieldPickupTime,
	customer.FieldPickupLocation,
	customer.FieldDropoffTime,
	customer.FieldDropoffLocation,
	customer.FieldDurationDays,
	customer.FieldAdditionalServices,
}

// Normalizer turns spreadsheet rows into create-customer payloads.
type Normalizer struct {
	emptyValue string
}

func NewNormalizer(cfg config.AppConfig) *Normalizer {
	return &Normalizer{emptyValue: cfg.EmptyValue}
}

// Normalize builds the create-customer request for row. It fails only
// when row lacks one of the schema fields entirely.
func (n *Normalizer) Normalize(row customer.SourceRow) (*customer.CreateCustomerRequest, error) {
	for _, field := range append([]string{customer.FieldName, customer.FieldPhone, customer.FieldEmail}, metadataFields...) {
		if _, ok := row.Get(field); !ok {
			return nil, fmt.Errorf("%w: row %d has no %q field", xerrors.ErrNormalization, row.Index, field)
		}
	}

	name, _ := row.Get(customer.FieldName)
	orderNumber, _ := row.Get(customer.FieldOrderNumber)

	req := &customer.CreateCustomerRequest{
		Name:        name,
		Description: fmt.Sprintf("order number: %s", n.text(orderNumber)),
		Metadata:    make(map[string]string, len(metadataFields)),
	}
	for _, field := range metadataFields {
		v, _ := row.Get(field)
		req.Metadata[field] = n.text(v)
	}

	if raw, _ := row.Get(customer.FieldPhone); strings.TrimSpace(raw) != "" {
		if phone := normalizePhone(raw); strings.TrimPrefix(phone, "+") != "" {
			req.Phone = &phone
		}
	}

	if email, _ := row.Get(customer.FieldEmail); email != "" && strings.Contains(email, "@") {
		req.Email = &email
	}

	return req, nil
}

// text renders a cell, substituting the empty placeholder for blanks.
func (n *Normalizer) text(v string) string {
	if strings.TrimSpace(v) == "" {
		return n.emptyValue
	}
	return v
}

// ========== Helper Methods ==========

// normalizePhone coerces a phone cell toward E.164 shape: a bare number
// gains a leading '+', then everything but digits and that leading '+'
// is dropped. No country code or length check is made.
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if isDigit(rune(phone[0])) {
		phone = "+" + phone
	}

	var b strings.Builder
	b.Grow(len(phone))
	for i, char := range phone {
		if i == 0 && char == '+' {
			b.WriteRune(char)
			continue
		}
		if isDigit(char) {
			b.WriteRune(char)
		}
	}
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
