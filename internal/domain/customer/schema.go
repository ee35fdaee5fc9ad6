// internal/domain/customer/schema.go
package customer

import (
	"strings"

	xerrors "github.com/clementatt/Stripe-customers-import/internal/pkg/errors"
)

// Column maps an external spreadsheet header to an internal field name.
type Column struct {
	External string
	Internal string
}

// Schema is the ordered set of columns a source file must provide.
type Schema []Column

// DefaultSchema describes the booking export the importer consumes.
var DefaultSchema = Schema{
	{External: "Customer name", Internal: FieldName},
	{External: "Klook booking reference ID", Internal: FieldOrderNumber},
	{External: "Customer phone number", Internal: FieldPhone},
	{External: "Customer email", Internal: FieldEmail},
	{External: "Pick-up time (local)", Internal: FieldPickupTime},
	{External: "Pick-up location", Internal: FieldPickupLocation},
	{External: "Drop-off time (local)", Internal: FieldDropoffTime},
	{External: "Drop-off location", Internal: FieldDropoffLocation},
	{External: "Duration (days)", Internal: FieldDurationDays},
	{External: "Additional services", Internal: FieldAdditionalServices},
}

// InternalNames returns the internal field names in schema order.
func (s Schema) InternalNames() []string {
	names := make([]string, 0, len(s))
	for _, c := range s {
		names = append(names, c.Internal)
	}
	return names
}

// Binding is a schema resolved against a concrete header row.
type Binding struct {
	positions map[string]int // internal name -> column index
}

// Bind resolves every external column of s in header. It returns a
// *xerrors.MissingColumnsError naming the absent external headers, in
// schema order, when any is missing.
func (s Schema) Bind(header []string) (*Binding, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	b := &Binding{positions: make(map[string]int, len(s))}
	var missing []string
	for _, c := range s {
		pos, ok := index[c.External]
		if !ok {
			missing = append(missing, c.External)
			continue
		}
		b.positions[c.Internal] = pos
	}
	if len(missing) > 0 {
		return nil, &xerrors.MissingColumnsError{Columns: missing}
	}
	return b, nil
}

// Missing returns the internal names from required that the binding
// does not resolve.
func (b *Binding) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := b.positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Row renames one record of cells into a SourceRow. Cells past the end
// of a short record read as empty.
func (b *Binding) Row(index int, cells []string) SourceRow {
	fields := make(map[string]string, len(b.positions))
	for name, pos := range b.positions {
		if pos < len(cells) {
			fields[name] = strings.TrimSpace(cells[pos])
		} else {
			fields[name] = ""
		}
	}
	return SourceRow{Index: index, Fields: fields}
}
