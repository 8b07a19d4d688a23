package formaters

import (
	"fmt"

	"github.com/delta-vision/deltaterm/pkg/relay"
	"github.com/fatih/color"
	"github.com/rodaine/table"
)

func Sessions(sessions []relay.Info) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("SESSION", "PEER", "PID", "SIZE", "STATE", "UPTIME")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, session := range sessions {
		tbl.AddRow(
			session.ID,
			session.Peer,
			session.Pid,
			fmt.Sprintf("%dx%d", session.Cols, session.Rows),
			session.State,
			RoundAndFormatDuration(session.StartedAt),
		)
	}

	tbl.Print()
}
