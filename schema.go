package bizlist

import (
	"slices"
	"sort"
	"strings"
)

// Canonical field names.
const (
	FieldDateAdded         = "DATE ADDED"
	FieldTitle             = "TITLE"
	FieldLocation          = "LOCATION"
	FieldState             = "STATE"
	FieldYearEstablished   = "YEAR ESTABLISHED"
	FieldLinkToDeal        = "LINK TO DEAL"
	FieldPrice             = "PRICE"
	FieldRevenue           = "REVENUE"
	FieldEBITDA            = "EBITDA"
	FieldCashFlow          = "CASH FLOW"
	FieldIndustryDetails   = "INDUSTRY DETAILS"
	FieldEmployees         = "NUMBER OF EMPLOYEES"
	FieldInventory         = "INVENTORY"
	FieldReasonForSelling  = "REASON FOR SELLING"
	FieldSellerType        = "SELLER TYPE"
	FieldRealEstate        = "REAL ESTATE"
	FieldBuildingSF        = "BUILDING SF"
	FieldFacilities        = "FACILITIES"
	FieldFFE               = "FF&E"
	FieldIntermediaryName  = "INTERMEDIARY NAME"
	FieldIntermediaryFirm  = "INTERMEDIARY FIRM"
	FieldIntermediaryPhone = "INTERMEDIARY PHONE"
	FieldGrowthExpansion   = "GROWTH & EXPANSION"
	FieldFinancing         = "FINANCING"
	FieldSupportTraining   = "SUPPORT & TRAINING"
	FieldFranchise         = "FRANCHISE"
	FieldCompetition       = "COMPETITION"
	FieldHomeBased         = "HOME-BASED"
)

var canonicalFields = []string{
	FieldDateAdded,
	FieldTitle,
	FieldLocation,
	FieldState,
	FieldYearEstablished,
	FieldLinkToDeal,
	FieldPrice,
	FieldRevenue,
	FieldEBITDA,
	FieldCashFlow,
	FieldIndustryDetails,
	FieldEmployees,
	FieldInventory,
	FieldReasonForSelling,
	FieldSellerType,
	FieldRealEstate,
	FieldBuildingSF,
	FieldFacilities,
	FieldFFE,
	FieldIntermediaryName,
	FieldIntermediaryFirm,
	FieldIntermediaryPhone,
	FieldGrowthExpansion,
	FieldFinancing,
	FieldSupportTraining,
	FieldFranchise,
	FieldCompetition,
	FieldHomeBased,
}

// MoneyFields are coerced to numbers after extraction.
var MoneyFields = []string{
	FieldPrice,
	FieldRevenue,
	FieldEBITDA,
	FieldCashFlow,
	FieldInventory,
	FieldFFE,
}

// Alias maps a raw label spelling onto a canonical field.
type Alias struct {
	Label string
	Field string
}

// Declaration order matters: prefix matching takes the first alias whose
// label prefixes the input.
var builtinAliases = []Alias{
	{"DATE ADDED", FieldDateAdded},
	{"DATE POSTED", FieldDateAdded},
	{"TITLE", FieldTitle},
	{"LOCATION", FieldLocation},
	{"STATE", FieldState},
	{"YEAR ESTABLISHED", FieldYearEstablished},
	{"YEAR FOUNDED", FieldYearEstablished},
	{"LINK TO DEAL", FieldLinkToDeal},
	{"ASKING PRICE", FieldPrice},
	{"PRICE", FieldPrice},
	{"REVENUE", FieldRevenue},
	{"EBITDA", FieldEBITDA},
	{"CASH FLOW", FieldCashFlow},
	{"DESCRIPTION", FieldIndustryDetails},
	{"INDUSTRY DETAILS", FieldIndustryDetails},
	{"EMPLOYEES", FieldEmployees},
	{"NUMBER OF EMPLOYEES", FieldEmployees},
	{"INVENTORY", FieldInventory},
	{"REASON FOR SELLING", FieldReasonForSelling},
	{"SELLER TYPE", FieldSellerType},
	{"REAL ESTATE", FieldRealEstate},
	{"BUILDING SQ FT", FieldBuildingSF},
	{"BUILDING SIZE", FieldBuildingSF},
	{"BUILDING SF", FieldBuildingSF},
	{"FACILITIES", FieldFacilities},
	{"FF&E", FieldFFE},
	{"BROKER NAME", FieldIntermediaryName},
	{"INTERMEDIARY NAME", FieldIntermediaryName},
	{"BROKER FIRM", FieldIntermediaryFirm},
	{"INTERMEDIARY FIRM", FieldIntermediaryFirm},
	{"BROKER PHONE", FieldIntermediaryPhone},
	{"PHONE", FieldIntermediaryPhone},
	{"INTERMEDIARY PHONE", FieldIntermediaryPhone},
	{"GROWTH & EXPANSION", FieldGrowthExpansion},
	{"GROWTH / EXPANSION", FieldGrowthExpansion},
	{"FINANCING", FieldFinancing},
	{"SUPPORT & TRAINING", FieldSupportTraining},
	{"TRAINING & SUPPORT", FieldSupportTraining},
	{"FRANCHISE", FieldFranchise},
	{"COMPETITION", FieldCompetition},
	{"HOME-BASED", FieldHomeBased},
}

// Schema is the canonical field set plus the label alias table. A Schema is
// read-only after construction and safe for concurrent use.
type Schema struct {
	fields  []string
	index   map[string]int
	aliases []Alias
	exact   map[string]string
}

// NewSchema returns a Schema with the built-in aliases followed by extra.
// Extra aliases are ordered by label so configuration maps produce a stable
// prefix-matching order. It returns EINVALID when an alias targets an
// unknown field or repeats a label that is already defined.
func NewSchema(extra ...Alias) (*Schema, error) {
	s := &Schema{
		fields: canonicalFields,
		index:  make(map[string]int, len(canonicalFields)),
		exact:  make(map[string]string, len(builtinAliases)+len(extra)),
	}
	for i, f := range s.fields {
		s.index[f] = i
	}

	extra = slices.Clone(extra)
	sort.SliceStable(extra, func(i, j int) bool {
		return NormalizeLabel(extra[i].Label) < NormalizeLabel(extra[j].Label)
	})

	for _, a := range slices.Concat(builtinAliases, extra) {
		label := NormalizeLabel(a.Label)
		field := NormalizeLabel(a.Field)
		if label == "" {
			return nil, Errorf(EINVALID, "alias for %q has an empty label", a.Field)
		}
		if !s.Has(field) {
			return nil, Errorf(EINVALID, "alias %q targets unknown field %q", a.Label, a.Field)
		}
		if _, ok := s.exact[label]; ok {
			return nil, Errorf(EINVALID, "alias %q is already defined", a.Label)
		}
		s.exact[label] = field
		s.aliases = append(s.aliases, Alias{Label: label, Field: field})
	}
	return s, nil
}

// DefaultSchema returns a Schema with only the built-in aliases.
func DefaultSchema() *Schema {
	s, err := NewSchema()
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the canonical field names in schema order.
func (s *Schema) Fields() []string {
	return slices.Clone(s.fields)
}

// Has reports whether field is a canonical field name.
func (s *Schema) Has(field string) bool {
	_, ok := s.index[field]
	return ok
}

// Aliases returns the alias table in matching order.
func (s *Schema) Aliases() []Alias {
	return slices.Clone(s.aliases)
}

// Defaults returns a record with every field absent.
func (s *Schema) Defaults() *Record {
	return &Record{schema: s, values: make([]Value, len(s.fields))}
}

// Canonicalize maps a raw label onto a canonical field. An exact alias match
// wins; otherwise the first alias, in declaration order, that prefixes the
// normalized label is used.
func (s *Schema) Canonicalize(label string) (string, bool) {
	key := NormalizeLabel(label)
	if key == "" {
		return "", false
	}
	if field, ok := s.exact[key]; ok {
		return field, true
	}
	for _, a := range s.aliases {
		if strings.HasPrefix(key, a.Label) {
			return a.Field, true
		}
	}
	return "", false
}

// Merge overlays extracted values onto a fresh default record. Keys that are
// not canonical fields are dropped.
func (s *Schema) Merge(extracted map[string]Value) *Record {
	r := s.Defaults()
	for field, v := range extracted {
		if i, ok := s.index[field]; ok {
			r.values[i] = v
		}
	}
	return r
}
