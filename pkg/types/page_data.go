package types

type StepData struct {
	Number  int
	Title   string
	Current bool
	Done    bool
}

// RequestSteps are the wizard step labels in order.
var RequestSteps = []string{
	"Personal Info",
	"Document Type",
	"Supporting Docs",
	"Review",
}

// StepProgress builds the progress bar shown above each step page.
func StepProgress(current int) []StepData {
	steps := make([]StepData, 0, len(RequestSteps))
	for i, title := range RequestSteps {
		steps = append(steps, StepData{
			Number:  i + 1,
			Title:   title,
			Current: i == current,
			Done:    i < current,
		})
	}
	return steps
}

type BasePageData struct {
	Title string
}

type HomePageData struct {
	BasePageData
	Notice     string
	Error      string
	LastStatus *RequestStatus
}

type PersonalInfoPageData struct {
	BasePageData
	Steps       []StepData
	Form        PersonalInfo
	FieldErrors map[string]string
}

type DocumentInfoPageData struct {
	BasePageData
	Steps         []StepData
	Form          DocumentInfo
	DocumentKinds []DocumentKind
	FieldErrors   map[string]string
}

type UploadPageData struct {
	BasePageData
	Steps         []StepData
	DocumentLabel string
	File          *FileRef
	Preview       *string
	MaxSizeMB     int64
	FieldErrors   map[string]string
}

type ReviewPageData struct {
	BasePageData
	Steps         []StepData
	State         RequestState
	DocumentLabel string
	Error         string
}

type ConfirmationPageData struct {
	BasePageData
	Outcome      *RequestStatus
	PersonalInfo PersonalInfo
}

type StatusSearchPageData struct {
	BasePageData
	RequestID   string
	FieldErrors map[string]string
}

type StatusDetailPageData struct {
	BasePageData
	RequestID string
	Status    *RequestStatus
	Error     string
}
