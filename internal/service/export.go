package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// ExportFileName is the suggested download name for the CSV report.
const ExportFileName = "maintenance_report.csv"

var exportHeader = []string{
	"ID", "Room", "Occupied", "Asset", "Issue", "Status", "Urgency", "Impact", "Priority", "CreatedAt",
}

// ExportCSV renders the collection as a CSV report, one row per ticket.
// Every field is double-quoted, with embedded quotes doubled.
func ExportCSV(tickets []domain.Ticket) []byte {
	var b strings.Builder
	writeCSVRow(&b, exportHeader)
	for _, t := range tickets {
		occupied := "NO"
		if t.IsOccupied {
			occupied = "YES"
		}
		writeCSVRow(&b, []string{
			t.ID,
			t.RoomNumber,
			occupied,
			t.Asset,
			t.IssueType,
			string(t.Status),
			string(t.Urgency),
			string(t.Impact),
			strconv.Itoa(t.PriorityScore),
			t.CreatedAt.Format(time.RFC3339),
		})
	}
	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
