package wizard

import "docurequest/pkg/types"

const (
	StepPersonalInfo = iota
	StepDocumentType
	StepUpload
	StepReview
)

// FirstIncompleteStep returns the earliest step whose own data is still
// missing, or StepReview when everything needed for review is present.
func FirstIncompleteStep(state types.RequestState) int {
	switch {
	case !state.PersonalInfo.Complete():
		return StepPersonalInfo
	case state.DocumentInfo.Type == "":
		return StepDocumentType
	case state.FileInfo.File == nil:
		return StepUpload
	default:
		return StepReview
	}
}

// Guard is run on entry to a step page. It reports whether the page may be
// shown and, if not, the step to redirect to.
func Guard(state types.RequestState, entering int) (int, bool) {
	first := FirstIncompleteStep(state)
	if entering <= first {
		return entering, true
	}
	return first, false
}
