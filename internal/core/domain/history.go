package domain

import (
	"strings"
	"time"
)

// Label is the outcome of a classification.
type Label string

const (
	LabelBullying    Label = "bullying"
	LabelNotBullying Label = "notbullying"
)

// TimestampLayout is the on-disk format of HistoryRecord.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// LabelForClass maps a predicted class index to a Label: class 0 is bullying,
// every other class is not.
func LabelForClass(class int) Label {
	if class == 0 {
		return LabelBullying
	}
	return LabelNotBullying
}

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	return l == LabelBullying || l == LabelNotBullying
}

// Display returns the upper-case form shown on the prediction page.
func (l Label) Display() string {
	return strings.ToUpper(string(l))
}

// HistoryRecord is the immutable log entry of one classification request.
type HistoryRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Text       string    `json:"text"`
	Label      Label     `json:"label"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// FormattedTimestamp renders Timestamp in TimestampLayout.
func (r *HistoryRecord) FormattedTimestamp() string {
	return r.Timestamp.Format(TimestampLayout)
}
