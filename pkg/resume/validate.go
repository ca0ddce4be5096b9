package resume

import (
	// embed the resume JSON schema
	_ "embed"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// schemaRootContext is how gojsonschema names the document root.
const schemaRootContext = "(root)"

//go:embed resume.schema.json
var schemaJSON string

//nolint:gochecknoglobals // Shared validator instance, safe for concurrent use
var validate = newValidator()

// Model field order, used to report the first offending field deterministically.
//
//nolint:gochecknoglobals // Schema field order
var modelFieldOrder = []string{"summary", "skills", "education", "certificates", "work", "projects"}

// ValidationError identifies the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() (msg string) {
	msg = fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
	return msg
}

func newValidator() (v *validator.Validate) {
	v = validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateModel checks the shape of a raw resume record and decodes it.
func ValidateModel(raw map[string]interface{}) (model Model, err error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	docLoader := gojsonschema.NewGoLoader(raw)

	var result *gojsonschema.Result
	result, err = gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		err = errors.Wrap(err, "failed to run resume schema validation")
		return model, err
	}

	if !result.Valid() {
		err = firstSchemaError(result.Errors())
		return model, err
	}

	var data []byte
	data, err = json.Marshal(raw)
	if err != nil {
		err = errors.Wrap(err, "failed to encode resume record")
		return model, err
	}

	err = json.Unmarshal(data, &model)
	if err != nil {
		err = errors.Wrap(err, "failed to decode resume record")
		return model, err
	}

	return model, err
}

// ValidateContact enforces presence of the name and the email and URL formats.
func ValidateContact(contact ContactInfo) (err error) {
	err = validate.Struct(contact)
	if err == nil {
		return err
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		err = &ValidationError{
			Field:  KeyPersonalDetails + "." + fe.Field(),
			Reason: describeTag(fe.Tag()),
		}
		return err
	}

	err = errors.Wrap(err, "failed to validate contact info")
	return err
}

// ValidateSection checks a single section directive.
func ValidateSection(directive SectionDirective) (err error) {
	err = validate.Struct(directive)
	if err != nil {
		err = &ValidationError{Field: KeyResumeSections + ".type", Reason: "is required"}
		return err
	}
	return err
}

func describeTag(tag string) (reason string) {
	switch tag {
	case "required":
		reason = "is required"
	case "email":
		reason = "must be a valid email address"
	case "url":
		reason = "must be a valid URL"
	default:
		reason = "failed " + tag + " check"
	}
	return reason
}

func firstSchemaError(resultErrs []gojsonschema.ResultError) (err error) {
	if len(resultErrs) == 0 {
		err = &ValidationError{Field: KeyResume, Reason: "does not match the resume schema"}
		return err
	}

	type fieldErr struct {
		field  string
		reason string
	}

	found := make([]fieldErr, 0, len(resultErrs))
	for _, re := range resultErrs {
		found = append(found, fieldErr{field: schemaErrorField(re), reason: re.Description()})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return lessFieldPath(found[i].field, found[j].field)
	})

	err = &ValidationError{Field: found[0].field, Reason: found[0].reason}
	return err
}

// schemaErrorField turns a schema error into a dotted path naming the offending field.
func schemaErrorField(re gojsonschema.ResultError) (field string) {
	field = re.Field()
	if field == schemaRootContext {
		field = ""
	}

	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			if field == "" {
				field = prop
				return field
			}
			field = field + "." + prop
			return field
		}
	}

	if field == "" {
		field = KeyResume
	}
	return field
}

func lessFieldPath(a, b string) (less bool) {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	ra, rb := fieldRank(as[0]), fieldRank(bs[0])
	if ra != rb {
		less = ra < rb
		return less
	}

	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ai, aErr := strconv.Atoi(as[i])
		bi, bErr := strconv.Atoi(bs[i])
		if aErr == nil && bErr == nil {
			less = ai < bi
			return less
		}
		less = as[i] < bs[i]
		return less
	}

	less = len(as) < len(bs)
	return less
}

func fieldRank(top string) (rank int) {
	for i, name := range modelFieldOrder {
		if name == top {
			rank = i
			return rank
		}
	}
	rank = len(modelFieldOrder)
	return rank
}
