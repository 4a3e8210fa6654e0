// Package export turns a timeline into its downstream formats: the CSV
// download and pre-formatted spreadsheet rows.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kou-isk/youcoder/internal/domain/model"
)

// isoMillis mirrors the JS Date.toISOString() rendering the CSV format was
// defined against: UTC, millisecond precision, trailing Z.
const isoMillis = "2006-01-02T15:04:05.000Z"

// csvHeader is the fixed column order consumers depend on.
const csvHeader = "Team,Action,Start,End,Labels"

// WriteCSV renders the timeline as CSV. End is the empty string for records
// still open; labels are joined with ", ". Fields are intentionally not
// quoted: composite "Category - Value" labels pass through as-is, which is a
// known fragility of the format, preserved rather than fixed.
func WriteCSV(w io.Writer, actions []model.Action) error {
	lines := make([]string, 0, len(actions)+1)
	lines = append(lines, csvHeader)
	for i := range actions {
		a := &actions[i]
		end := ""
		if !a.IsOpen() {
			end = Timestamp(*a.End)
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%s",
			a.Team, a.Action, Timestamp(a.Start), end, strings.Join(a.Labels, ", ")))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// Timestamp renders a playback position in milliseconds as ISO-8601.
func Timestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoMillis)
}

// FileName builds a unique download name for a video's export.
func FileName(videoID string) string {
	if videoID == "" {
		videoID = "timeline"
	}
	return fmt.Sprintf("youcoder-%s-%s.csv", videoID, uuid.NewString())
}
