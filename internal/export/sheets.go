package export

import (
	"context"
	"strings"

	"github.com/kou-isk/youcoder/internal/domain/model"
)

// RowAppender is the narrow surface of the spreadsheet-sync collaborator.
// The actual Sheets client (OAuth and all) lives outside this repository;
// this package only produces the rows it consumes.
type RowAppender interface {
	AppendRows(ctx context.Context, spreadsheetID, valueRange string, rows [][]string) error
}

// SheetRows formats the timeline in the same column shape as the CSV export,
// one row per record, without the header.
func SheetRows(actions []model.Action) [][]string {
	rows := make([][]string, 0, len(actions))
	for i := range actions {
		a := &actions[i]
		end := ""
		if !a.IsOpen() {
			end = Timestamp(*a.End)
		}
		rows = append(rows, []string{
			a.Team,
			a.Action,
			Timestamp(a.Start),
			end,
			strings.Join(a.Labels, ", "),
		})
	}
	return rows
}

// AppendTimeline pushes the formatted rows to the sink.
func AppendTimeline(ctx context.Context, sink RowAppender, spreadsheetID, valueRange string, actions []model.Action) error {
	return sink.AppendRows(ctx, spreadsheetID, valueRange, SheetRows(actions))
}
