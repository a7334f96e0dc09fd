package wizard

import (
	"strings"
	"testing"

	"docurequest/pkg/types"

	"github.com/stretchr/testify/require"
)

func TestValidatePersonalInfo(t *testing.T) {
	v := NewValidator()

	valid := types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567"}

	tests := []struct {
		name   string
		mutate func(*types.PersonalInfo)
		want   FieldErrors
	}{
		{
			name:   "valid",
			mutate: func(*types.PersonalInfo) {},
			want:   FieldErrors{},
		},
		{
			name:   "short name",
			mutate: func(p *types.PersonalInfo) { p.FullName = "J" },
			want:   FieldErrors{"fullName": "Name must be at least 2 characters"},
		},
		{
			name:   "long name",
			mutate: func(p *types.PersonalInfo) { p.FullName = strings.Repeat("a", 101) },
			want:   FieldErrors{"fullName": "Name is too long"},
		},
		{
			name:   "bad email",
			mutate: func(p *types.PersonalInfo) { p.Email = "jane.example.com" },
			want:   FieldErrors{"email": "Invalid email address"},
		},
		{
			name:   "bad phone",
			mutate: func(p *types.PersonalInfo) { p.Phone = "12" },
			want:   FieldErrors{"phone": "Phone number is not valid"},
		},
		{
			name: "everything empty",
			mutate: func(p *types.PersonalInfo) {
				*p = types.PersonalInfo{}
			},
			want: FieldErrors{
				"fullName": "Name must be at least 2 characters",
				"email":    "Invalid email address",
				"phone":    "Phone number is not valid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := valid
			tt.mutate(&info)
			require.Equal(t, tt.want, v.PersonalInfo(info))
		})
	}
}

func TestPhoneFormats(t *testing.T) {
	v := NewValidator()

	for _, phone := range []string{"5551234567", "(555) 123-4567", "555.123.4567", "+5551234567", "555-123-456789"} {
		t.Run(phone, func(t *testing.T) {
			errs := v.PersonalInfo(types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Phone: phone})
			require.Empty(t, errs)
		})
	}
}

func TestValidateDocumentInfo(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		info types.DocumentInfo
		want FieldErrors
	}{
		{
			name: "missing type",
			info: types.DocumentInfo{},
			want: FieldErrors{"type": "Document type is required"},
		},
		{
			name: "unknown type",
			info: types.DocumentInfo{Type: "passport"},
			want: FieldErrors{"type": "Document type is required"},
		},
		{
			name: "driver's license needs license number",
			info: types.DocumentInfo{Type: types.DocTypeDriversLicense},
			want: FieldErrors{"licenseNumber": "License number is required for driver's license requests"},
		},
		{
			name: "driver's license with license number",
			info: types.DocumentInfo{Type: types.DocTypeDriversLicense, LicenseNumber: "D1234567"},
			want: FieldErrors{},
		},
		{
			name: "tax records need reference number",
			info: types.DocumentInfo{Type: types.DocTypeTaxRecords},
			want: FieldErrors{"referenceNumber": "Reference number is required for this document type"},
		},
		{
			name: "property deed need reference number",
			info: types.DocumentInfo{Type: types.DocTypePropertyDeed, ReferenceNumber: "  "},
			want: FieldErrors{"referenceNumber": "Reference number is required for this document type"},
		},
		{
			name: "business registration with reference number",
			info: types.DocumentInfo{Type: types.DocTypeBusinessRegistration, ReferenceNumber: "BR-42"},
			want: FieldErrors{},
		},
		{
			name: "birth certificate needs issue date",
			info: types.DocumentInfo{Type: types.DocTypeBirthCertificate},
			want: FieldErrors{"issueDate": "Issue date is required for this document type"},
		},
		{
			name: "marriage certificate with issue date",
			info: types.DocumentInfo{Type: types.DocTypeMarriageCertificate, IssueDate: "2010-06-12"},
			want: FieldErrors{},
		},
		{
			name: "other has no conditional fields",
			info: types.DocumentInfo{Type: types.DocTypeOther},
			want: FieldErrors{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, v.DocumentInfo(tt.info))
		})
	}
}

func TestRequiredFields(t *testing.T) {
	require.Equal(t, []string{"licenseNumber"}, RequiredFields(types.DocTypeDriversLicense))
	require.Equal(t, []string{"referenceNumber"}, RequiredFields(types.DocTypeTaxRecords))
	require.Equal(t, []string{"issueDate"}, RequiredFields(types.DocTypeBirthCertificate))
	require.Empty(t, RequiredFields(types.DocTypeMedicalRecord))
}

func TestValidateFile(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		ref  *types.FileRef
		want FieldErrors
	}{
		{
			name: "missing",
			ref:  nil,
			want: FieldErrors{"file": "Supporting document is required"},
		},
		{
			name: "pdf",
			ref:  &types.FileRef{Name: "a.pdf", ContentType: "application/pdf", Size: 1024},
			want: FieldErrors{},
		},
		{
			name: "png at the limit",
			ref:  &types.FileRef{Name: "a.png", ContentType: "image/png", Size: 5 << 20},
			want: FieldErrors{},
		},
		{
			name: "too large",
			ref:  &types.FileRef{Name: "a.png", ContentType: "image/png", Size: 5<<20 + 1},
			want: FieldErrors{"file": "File size is too large. Maximum allowed size is 5MB."},
		},
		{
			name: "unsupported format",
			ref:  &types.FileRef{Name: "a.docx", ContentType: "application/msword", Size: 1024},
			want: FieldErrors{"file": "Unsupported file format. Please upload a PDF or image file."},
		},
		{
			name: "format reported before size",
			ref:  &types.FileRef{Name: "a.zip", ContentType: "application/zip", Size: 6 << 20},
			want: FieldErrors{"file": "Unsupported file format. Please upload a PDF or image file."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, v.File(tt.ref))
		})
	}
}

func TestValidateRequestID(t *testing.T) {
	v := NewValidator()

	require.Empty(t, v.RequestID("AB12"))
	require.Empty(t, v.RequestID("  ab12cd34  "))
	require.Equal(t, FieldErrors{"requestId": "Request ID must be at least 4 characters"}, v.RequestID("AB1"))
	require.Equal(t, FieldErrors{"requestId": "Request ID must be at least 4 characters"}, v.RequestID("   "))
}
