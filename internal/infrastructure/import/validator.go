package csvimport

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldType names the parse/validation behaviour applied to a column
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
	TypeDate    FieldType = "date"
	TypeEmail   FieldType = "email"
	TypeBool    FieldType = "bool"
	TypeUUID    FieldType = "uuid"
)

// FieldRule is the full set of constraints for one CSV column
type FieldRule struct {
	Column      string
	Type        FieldType
	Required    bool
	MinLength   int
	MaxLength   int
	MinValue    *decimal.Decimal
	MaxValue    *decimal.Decimal
	Pattern     *regexp.Regexp
	PatternDesc string
	DateFormat  string
	Unique      bool
	Reference   string // Referenced entity type, resolved through a lookup
	CustomFunc  func(value string) error
}

// FieldRuleBuilder assembles a FieldRule through chained calls
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for the named column; the zero rule is an optional
// free-form string with ISO dates.
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{
		rule: FieldRule{
			Column:     column,
			Type:       TypeString,
			DateFormat: "2006-01-02",
		},
	}
}

// Required rejects empty values
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// String accepts any text
func (b *FieldRuleBuilder) String() *FieldRuleBuilder {
	b.rule.Type = TypeString
	return b
}

// Int requires a base-10 integer
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal requires a decimal number
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// Date requires a date in the rule's format
func (b *FieldRuleBuilder) Date() *FieldRuleBuilder {
	b.rule.Type = TypeDate
	return b
}

// DateFormat overrides the date layout
func (b *FieldRuleBuilder) DateFormat(format string) *FieldRuleBuilder {
	b.rule.DateFormat = format
	return b
}

// Email requires an RFC 5322 address
func (b *FieldRuleBuilder) Email() *FieldRuleBuilder {
	b.rule.Type = TypeEmail
	return b
}

// Bool accepts the usual true/false spellings
func (b *FieldRuleBuilder) Bool() *FieldRuleBuilder {
	b.rule.Type = TypeBool
	return b
}

// UUID requires a canonical UUID
func (b *FieldRuleBuilder) UUID() *FieldRuleBuilder {
	b.rule.Type = TypeUUID
	return b
}

// MinLength bounds the value length from below
func (b *FieldRuleBuilder) MinLength(n int) *FieldRuleBuilder {
	b.rule.MinLength = n
	return b
}

// MaxLength bounds the value length from above
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// Length bounds the value length on both sides
func (b *FieldRuleBuilder) Length(min, max int) *FieldRuleBuilder {
	b.rule.MinLength = min
	b.rule.MaxLength = max
	return b
}

// MinValue bounds a numeric value from below
func (b *FieldRuleBuilder) MinValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &v
	return b
}

// MaxValue bounds a numeric value from above
func (b *FieldRuleBuilder) MaxValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MaxValue = &v
	return b
}

// Range bounds a numeric value on both sides
func (b *FieldRuleBuilder) Range(min, max decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &min
	b.rule.MaxValue = &max
	return b
}

// Pattern requires the value to match a regex; description feeds the error message
func (b *FieldRuleBuilder) Pattern(pattern, description string) *FieldRuleBuilder {
	b.rule.Pattern = regexp.MustCompile(pattern)
	b.rule.PatternDesc = description
	return b
}

// Unique rejects a value already seen earlier in the same file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Reference declares the value points at an existing entity
func (b *FieldRuleBuilder) Reference(refType string) *FieldRuleBuilder {
	b.rule.Reference = refType
	return b
}

// Custom attaches an arbitrary check
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.CustomFunc = fn
	return b
}

// Build finalizes the rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator applies a rule set row by row, accumulating errors
type FieldValidator struct {
	rules       map[string]FieldRule
	uniqueCheck map[string]map[string]int // column -> value -> first row number
	errors      *ErrorCollection
}

// NewFieldValidator indexes the rules by column
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	ruleMap := make(map[string]FieldRule, len(rules))
	for _, r := range rules {
		ruleMap[r.Column] = r
	}

	return &FieldValidator{
		rules:       ruleMap,
		uniqueCheck: make(map[string]map[string]int),
		errors:      NewErrorCollection(maxErrors),
	}
}

// ValidateRow checks every ruled column of the row and reports whether
// the row passed.
func (v *FieldValidator) ValidateRow(row *Row) bool {
	hasError := false

	for column, rule := range v.rules {
		value := row.Get(column)

		if rule.Required && value == "" {
			v.errors.AddRequiredError(row.LineNumber, column)
			hasError = true
			continue
		}

		// Empty optional fields pass as-is
		if value == "" {
			continue
		}

		if err := v.validateType(value, rule.Type, rule.DateFormat); err != nil {
			v.errors.AddTypeError(row.LineNumber, column, string(rule.Type), value)
			hasError = true
			continue
		}

		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			v.errors.AddLengthError(row.LineNumber, column, rule.MinLength, rule.MaxLength)
			hasError = true
		}
		if rule.MinLength > 0 && len(value) < rule.MinLength {
			v.errors.AddLengthError(row.LineNumber, column, rule.MinLength, rule.MaxLength)
			hasError = true
		}

		if rule.Type == TypeInt || rule.Type == TypeDecimal {
			if err := v.validateRange(value, rule.MinValue, rule.MaxValue); err != nil {
				if rule.MinValue != nil && rule.MaxValue != nil {
					minFloat, _ := rule.MinValue.Float64()
					maxFloat, _ := rule.MaxValue.Float64()
					v.errors.AddRangeError(row.LineNumber, column, minFloat, maxFloat)
				}
				hasError = true
			}
		}

		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			v.errors.AddPatternError(row.LineNumber, column, rule.PatternDesc, value)
			hasError = true
		}

		if rule.Unique {
			if v.uniqueCheck[column] == nil {
				v.uniqueCheck[column] = make(map[string]int)
			}
			if firstRow, exists := v.uniqueCheck[column][value]; exists {
				v.errors.Add(NewRowErrorWithValue(row.LineNumber, column, ErrCodeImportDuplicateInFile,
					fmt.Sprintf("duplicate value '%s' (first seen in row %d)", value, firstRow), value))
				hasError = true
			} else {
				v.uniqueCheck[column][value] = row.LineNumber
			}
		}

		if rule.CustomFunc != nil {
			if err := rule.CustomFunc(value); err != nil {
				v.errors.AddValidationError(row.LineNumber, column, ErrCodeImportValidation, err.Error())
				hasError = true
			}
		}
	}

	return !hasError
}

// validateType parses the value according to the declared type
func (v *FieldValidator) validateType(value string, fieldType FieldType, dateFormat string) error {
	switch fieldType {
	case TypeString:
		return nil
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeDecimal:
		_, err := decimal.NewFromString(value)
		return err
	case TypeDate:
		_, err := time.Parse(dateFormat, value)
		return err
	case TypeEmail:
		_, err := mail.ParseAddress(value)
		return err
	case TypeBool:
		lower := strings.ToLower(value)
		if lower == "true" || lower == "false" || lower == "1" || lower == "0" ||
			lower == "yes" || lower == "no" || lower == "y" || lower == "n" {
			return nil
		}
		return fmt.Errorf("invalid boolean value: %s", value)
	case TypeUUID:
		return validateUUID(value)
	}
	return nil
}

// validateUUID checks the canonical 8-4-4-4-12 form
func validateUUID(s string) error {
	if len(s) != 36 {
		return fmt.Errorf("invalid UUID length")
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return fmt.Errorf("invalid UUID format")
	}
	for i, c := range s {
		if i == 8 || i == 13 || i == 18 || i == 23 {
			continue
		}
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return fmt.Errorf("invalid UUID character")
		}
	}
	return nil
}

// validateRange compares a numeric value against the rule bounds
func (v *FieldValidator) validateRange(value string, min, max *decimal.Decimal) error {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return err
	}

	if min != nil && d.LessThan(*min) {
		return fmt.Errorf("value %s is less than minimum %s", value, min.String())
	}
	if max != nil && d.GreaterThan(*max) {
		return fmt.Errorf("value %s is greater than maximum %s", value, max.String())
	}
	return nil
}

// Errors exposes everything collected so far
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}

// Reset drops per-file state so the validator can run another file
func (v *FieldValidator) Reset() {
	v.uniqueCheck = make(map[string]map[string]int)
	v.errors.Clear()
}

// ReferenceValidator checks values that must point at existing entities,
// caching lookups so repeated values hit the store once.
type ReferenceValidator struct {
	cache      map[string]map[string]bool // refType -> value -> exists
	lookupFunc func(refType, value string) (bool, error)
	errors     *ErrorCollection
}

// NewReferenceValidator wraps the lookup with a cache
func NewReferenceValidator(lookupFunc func(refType, value string) (bool, error), maxErrors int) *ReferenceValidator {
	return &ReferenceValidator{
		cache:      make(map[string]map[string]bool),
		lookupFunc: lookupFunc,
		errors:     NewErrorCollection(maxErrors),
	}
}

// PreloadReferences warms the cache for a batch of values
func (v *ReferenceValidator) PreloadReferences(refType string, values []string) error {
	if v.cache[refType] == nil {
		v.cache[refType] = make(map[string]bool)
	}

	for _, value := range values {
		exists, err := v.lookupFunc(refType, value)
		if err != nil {
			return err
		}
		v.cache[refType][value] = exists
	}

	return nil
}

// ValidateReference resolves one value, consulting the cache first
func (v *ReferenceValidator) ValidateReference(row int, column, refType, value string) bool {
	if value == "" {
		return true
	}

	if v.cache[refType] != nil {
		if exists, ok := v.cache[refType][value]; ok {
			if !exists {
				v.errors.AddReferenceError(row, column, value, refType)
				return false
			}
			return true
		}
	}

	exists, err := v.lookupFunc(refType, value)
	if err != nil {
		v.errors.AddValidationError(row, column, ErrCodeImportValidation,
			fmt.Sprintf("error checking %s reference: %v", refType, err))
		return false
	}

	if v.cache[refType] == nil {
		v.cache[refType] = make(map[string]bool)
	}
	v.cache[refType][value] = exists

	if !exists {
		v.errors.AddReferenceError(row, column, value, refType)
		return false
	}

	return true
}

// Errors exposes everything collected so far
func (v *ReferenceValidator) Errors() *ErrorCollection {
	return v.errors
}

// Reset empties the cache
func (v *ReferenceValidator) Reset() {
	v.cache = make(map[string]map[string]bool)
	v.errors.Clear()
}

// UniquenessValidator asks the store whether a value is already taken
type UniquenessValidator struct {
	lookupFunc func(entityType, field, value string) (bool, error)
	errors     *ErrorCollection
}

// NewUniquenessValidator builds a validator over the lookup
func NewUniquenessValidator(lookupFunc func(entityType, field, value string) (bool, error), maxErrors int) *UniquenessValidator {
	return &UniquenessValidator{
		lookupFunc: lookupFunc,
		errors:     NewErrorCollection(maxErrors),
	}
}

// ValidateUnique reports whether the value is free; a hit records a
// duplicate error
func (v *UniquenessValidator) ValidateUnique(row int, column, entityType, value string) bool {
	if value == "" {
		return true
	}

	exists, err := v.lookupFunc(entityType, column, value)
	if err != nil {
		v.errors.AddValidationError(row, column, ErrCodeImportValidation,
			fmt.Sprintf("error checking uniqueness: %v", err))
		return false
	}

	if exists {
		v.errors.AddDuplicateError(row, column, value, true)
		return false
	}

	return true
}

// Errors exposes everything collected so far
func (v *UniquenessValidator) Errors() *ErrorCollection {
	return v.errors
}
