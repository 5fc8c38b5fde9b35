package domain

// Prediction is the classifier output for a single text.
type Prediction struct {
	Label      Label
	Confidence float64
}

// remediationSteps is shown, in order, whenever a text is labelled bullying.
var remediationSteps = []string{
	"Do not respond immediately",
	"Block the offender",
	"Capture screenshots",
	"Report to platform",
	"Talk to trusted adults",
}

// RemediationSteps returns the recommended actions for label, or nil when the
// label is not bullying. The returned slice is a copy.
func RemediationSteps(label Label) []string {
	if label != LabelBullying {
		return nil
	}
	out := make([]string, len(remediationSteps))
	copy(out, remediationSteps)
	return out
}

// Analytics summarises a user's history.
type Analytics struct {
	BullyingCount    int
	NotBullyingCount int
	// ImagePath is the web path of the word-cloud image, empty when rendering failed.
	ImagePath string
}
