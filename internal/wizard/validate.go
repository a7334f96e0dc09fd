package wizard

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"docurequest/pkg/types"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to the message shown next to it. An
// empty map means the input is valid.
type FieldErrors map[string]string

var phoneReg = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)

// messages is keyed by "<field>.<tag>".
var messages = map[string]string{
	"fullName.min":         "Name must be at least 2 characters",
	"fullName.max":         "Name is too long",
	"email.email":          "Invalid email address",
	"phone.phone":          "Phone number is not valid",
	"type.required":        "Document type is required",
	"type.doctype":         "Document type is required",
	"licenseNumber.rule":   "License number is required for driver's license requests",
	"referenceNumber.rule": "Reference number is required for this document type",
	"issueDate.rule":       "Issue date is required for this document type",
	"file.required":        "Supporting document is required",
	"contentType.oneof":    "Unsupported file format. Please upload a PDF or image file.",
	"size.max":             "File size is too large. Maximum allowed size is 5MB.",
	"requestId.min":        "Request ID must be at least 4 characters",
}

type fieldRule struct {
	field string
	value func(types.DocumentInfo) string
}

var (
	licenseNumberRule   = fieldRule{field: "licenseNumber", value: func(d types.DocumentInfo) string { return d.LicenseNumber }}
	referenceNumberRule = fieldRule{field: "referenceNumber", value: func(d types.DocumentInfo) string { return d.ReferenceNumber }}
	issueDateRule       = fieldRule{field: "issueDate", value: func(d types.DocumentInfo) string { return d.IssueDate }}
)

// documentRules lists the fields a document type additionally requires.
var documentRules = map[types.DocumentType][]fieldRule{
	types.DocTypeDriversLicense:       {licenseNumberRule},
	types.DocTypeTaxRecords:           {referenceNumberRule},
	types.DocTypePropertyDeed:         {referenceNumberRule},
	types.DocTypeBusinessRegistration: {referenceNumberRule},
	types.DocTypeBirthCertificate:     {issueDateRule},
	types.DocTypeMarriageCertificate:  {issueDateRule},
}

// RequiredFields returns the conditional fields the given type requires.
func RequiredFields(docType types.DocumentType) []string {
	rules := documentRules[docType]
	fields := make([]string, 0, len(rules))
	for _, rule := range rules {
		fields = append(fields, rule.field)
	}
	return fields
}

// Validator runs the per-step schemas.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneReg.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
		return types.DocumentType(fl.Field().String()).Valid()
	})

	return &Validator{validate: v}
}

func (v *Validator) PersonalInfo(info types.PersonalInfo) FieldErrors {
	return v.structErrors(info)
}

// DocumentInfo checks the schema first and then the conditional rule table
// for the selected type.
func (v *Validator) DocumentInfo(info types.DocumentInfo) FieldErrors {
	errs := v.structErrors(info)

	for _, rule := range documentRules[info.Type] {
		if strings.TrimSpace(rule.value(info)) == "" {
			errs[rule.field] = messages[rule.field+".rule"]
		}
	}

	return errs
}

func (v *Validator) File(ref *types.FileRef) FieldErrors {
	if ref == nil {
		return FieldErrors{"file": messages["file.required"]}
	}

	errs := v.structErrors(ref)

	// both problems surface on the single upload input, format first
	for _, field := range []string{"contentType", "size"} {
		if msg, ok := errs[field]; ok {
			return FieldErrors{"file": msg}
		}
	}
	return FieldErrors{}
}

func (v *Validator) RequestID(id string) FieldErrors {
	err := v.validate.Var(strings.TrimSpace(id), "required,min=4")
	if err == nil {
		return FieldErrors{}
	}
	return FieldErrors{"requestId": messages["requestId.min"]}
}

func (v *Validator) structErrors(s any) FieldErrors {
	out := FieldErrors{}

	err := v.validate.Struct(s)
	if err == nil {
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		out["_"] = err.Error()
		return out
	}

	for _, fe := range validationErrors {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Field validation for '" + fe.Field() + "' failed on the '" + fe.Tag() + "' tag"
		}
		out[fe.Field()] = msg
	}

	return out
}
