package types

import (
	"errors"
	"io"
)

var (
	ErrDraftNotFound   = errors.New("draft not found")
	ErrRequestNotFound = errors.New("request not found")
)

type PersonalInfo struct {
	FullName string `json:"fullName" form:"fullName" validate:"min=2,max=100"`
	Email    string `json:"email" form:"email" validate:"email"`
	Phone    string `json:"phone" form:"phone" validate:"phone"`
}

func (p PersonalInfo) Complete() bool {
	return p.FullName != "" && p.Email != "" && p.Phone != ""
}

// AsPatch turns a fully decoded form into a patch that sets every field.
func (p PersonalInfo) AsPatch() PersonalInfoPatch {
	return PersonalInfoPatch{
		FullName: &p.FullName,
		Email:    &p.Email,
		Phone:    &p.Phone,
	}
}

// PersonalInfoPatch is a partial update, nil fields keep their prior value.
type PersonalInfoPatch struct {
	FullName *string
	Email    *string
	Phone    *string
}

type DocumentInfo struct {
	Type            DocumentType `json:"type" form:"type" validate:"required,doctype"`
	LicenseNumber   string       `json:"licenseNumber,omitempty" form:"licenseNumber"`
	ReferenceNumber string       `json:"referenceNumber,omitempty" form:"referenceNumber"`
	IssueDate       string       `json:"issueDate,omitempty" form:"issueDate"`
	AdditionalInfo  string       `json:"additionalInfo,omitempty" form:"additionalInfo"`
}

func (d DocumentInfo) AsPatch() DocumentInfoPatch {
	return DocumentInfoPatch{
		Type:            &d.Type,
		LicenseNumber:   &d.LicenseNumber,
		ReferenceNumber: &d.ReferenceNumber,
		IssueDate:       &d.IssueDate,
		AdditionalInfo:  &d.AdditionalInfo,
	}
}

type DocumentInfoPatch struct {
	Type            *DocumentType
	LicenseNumber   *string
	ReferenceNumber *string
	IssueDate       *string
	AdditionalInfo  *string
}

type FileInfo struct {
	File    *FileRef `json:"file"`
	Preview *string  `json:"preview"`
}

type FileInfoPatch struct {
	File    *FileRef
	Preview *string
}

type RequestStatusKind string

const (
	StatusPending     RequestStatusKind = "Pending"
	StatusUnderReview RequestStatusKind = "Under Review"
	StatusCompleted   RequestStatusKind = "Completed"
)

// Notes is the human readable explanation shown next to a status.
func (k RequestStatusKind) Notes() string {
	switch k {
	case StatusCompleted:
		return "Your document is ready for collection."
	case StatusUnderReview:
		return "Your request is currently being processed by our team."
	default:
		return "Your request has been received and is in the queue for processing."
	}
}

// RequestStatus doubles as the submission outcome recorded after a
// successful submit and the record returned by a status lookup.
type RequestStatus struct {
	ID                      string            `json:"id"`
	Status                  RequestStatusKind `json:"status"`
	SubmittedDate           string            `json:"submittedDate"`
	EstimatedCompletionDate string            `json:"estimatedCompletionDate"`
	Notes                   string            `json:"notes,omitempty"`
}

// RequestState is the persisted wizard blob.
type RequestState struct {
	Step            int            `json:"step"`
	PersonalInfo    PersonalInfo   `json:"personalInfo"`
	DocumentInfo    DocumentInfo   `json:"documentInfo"`
	FileInfo        FileInfo       `json:"fileInfo"`
	RequestStatus   *RequestStatus `json:"requestStatus"`
	IsSubmitting    bool           `json:"isSubmitting"`
	IsSubmitted     bool           `json:"isSubmitted"`
	SubmissionError *string        `json:"submissionError"`
}

type SubmitRequestPayload struct {
	PersonalInfo PersonalInfo
	DocumentInfo DocumentInfo
	FileName     string
	FileType     string
	FileSize     int64
	Content      io.Reader
}

type SubmitRequestResponse struct {
	RequestID               string `json:"requestId"`
	EstimatedCompletionDate string `json:"estimatedCompletionDate"`
	Message                 string `json:"message"`
}

// DateLayout is the calendar date format used for every date shown to users.
const DateLayout = "2006-01-02"
