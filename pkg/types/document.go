package types

import (
	"strings"
	"time"
)

type DocumentType string

const (
	DocTypeBirthCertificate     DocumentType = "birth_certificate"
	DocTypeMarriageCertificate  DocumentType = "marriage_certificate"
	DocTypePropertyDeed         DocumentType = "property_deed"
	DocTypeDriversLicense       DocumentType = "drivers_license"
	DocTypeTaxRecords           DocumentType = "tax_records"
	DocTypeBusinessRegistration DocumentType = "business_registration"
	DocTypeResidencyCertificate DocumentType = "residency_certificate"
	DocTypeEducationTranscript  DocumentType = "education_transcript"
	DocTypeMedicalRecord        DocumentType = "medical_record"
	DocTypeOther                DocumentType = "other"
)

type DocumentKind struct {
	Value DocumentType
	Label string
}

// DocumentKinds is ordered as presented in the document type select.
var DocumentKinds = []DocumentKind{
	{Value: DocTypeBirthCertificate, Label: "Birth Certificate"},
	{Value: DocTypeMarriageCertificate, Label: "Marriage Certificate"},
	{Value: DocTypePropertyDeed, Label: "Property Deed"},
	{Value: DocTypeDriversLicense, Label: "Driver's License Copy"},
	{Value: DocTypeTaxRecords, Label: "Tax Records"},
	{Value: DocTypeBusinessRegistration, Label: "Business Registration"},
	{Value: DocTypeResidencyCertificate, Label: "Residency Certificate"},
	{Value: DocTypeEducationTranscript, Label: "Education Transcript"},
	{Value: DocTypeMedicalRecord, Label: "Medical Record"},
	{Value: DocTypeOther, Label: "Other Document"},
}

// Label falls back to the raw value for unknown types.
func (t DocumentType) Label() string {
	for _, kind := range DocumentKinds {
		if kind.Value == t {
			return kind.Label
		}
	}
	return string(t)
}

func (t DocumentType) Valid() bool {
	for _, kind := range DocumentKinds {
		if kind.Value == t {
			return true
		}
	}
	return false
}

// FileRef describes an uploaded supporting document. The bytes live in the
// upload store under StorageKey.
type FileRef struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType" validate:"oneof=application/pdf image/jpeg image/png image/gif"`
	Size        int64  `json:"size" validate:"max=5242880"`
	StorageKey  string `json:"storageKey"`
}

func (f *FileRef) IsImage() bool {
	return f != nil && strings.HasPrefix(f.ContentType, "image/")
}

// DocumentRequest is the submitted request as persisted by the postgres gateway
type DocumentRequest struct {
	ID                      string            `db:"id"`
	FullName                string            `db:"full_name"`
	Email                   string            `db:"email"`
	Phone                   string            `db:"phone"`
	DocumentType            DocumentType      `db:"document_type"`
	LicenseNumber           *string           `db:"license_number"`
	ReferenceNumber         *string           `db:"reference_number"`
	IssueDate               *string           `db:"issue_date"`
	AdditionalInfo          *string           `db:"additional_info"`
	FileName                string            `db:"file_name"`
	FileContentType         string            `db:"file_content_type"`
	FileSizeBytes           int64             `db:"file_size_bytes"`
	StorageKey              string            `db:"storage_key"`
	Status                  RequestStatusKind `db:"status"`
	Notes                   *string           `db:"notes"`
	SubmittedAt             time.Time         `db:"submitted_at"`
	EstimatedCompletionDate time.Time         `db:"estimated_completion_date"`
	CreatedAt               time.Time         `db:"created_at"`
	UpdatedAt               time.Time         `db:"updated_at"`
}
