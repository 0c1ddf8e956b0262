package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/borders/internal/models"
)

// PrintStatusTable prints a daemon snapshot as a two-column table
func PrintStatusTable(w io.Writer, st *models.Status) {
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")

	for _, row := range StatusRows(st) {
		table.Append(row[0], row[1])
	}

	table.Render()
}

// StatusRows returns the table rows for a snapshot
func StatusRows(st *models.Status) [][2]string {
	frame := "-"
	if !st.Frame.IsEmpty() {
		frame = st.Frame.String()
	}

	return [][2]string{
		{"State", st.State},
		{"Application", formatPID(st.PID)},
		{"Window", formatID(st.WindowID)},
		{"Frame", frame},
		{"Border Surface", formatID(st.OverlayID)},
		{"Active Space", fmt.Sprintf("%d", st.ActiveSpace)},
		{"Subscriptions", formatList(st.Subscriptions)},
		{"Pending Space Move", formatBool(st.PendingSpaceMove)},
		{"Forced Hidden", formatBool(st.ForcedHidden)},
		{"Overview", formatBool(st.Overview)},
		{"Debug Output", formatOnOff(st.DebugOutput)},
		{"Refreshes", fmt.Sprintf("%d", st.Refreshes)},
	}
}

// Helper functions

func formatPID(pid int) string {
	if pid == 0 {
		return "-"
	}
	return fmt.Sprintf("pid %d", pid)
}

func formatID(id uint32) string {
	if id == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	short := make([]string, len(items))
	for i, s := range items {
		short[i] = strings.TrimPrefix(s, "AX")
	}
	return truncate(strings.Join(short, ", "), 60)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
