package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/scenekit/assetpack/pkg/commands/collect"
	"github.com/scenekit/assetpack/pkg/commands/duplicates"
	"github.com/scenekit/assetpack/pkg/types"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	return t
}

func renderInventory(out io.Writer, inv *types.Inventory) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Category", "Name", "Size", "Path"})
	for _, e := range inv.Entries {
		size := humanize.Bytes(uint64(e.SizeBytes))
		if !e.Exists {
			size = "MISSING"
		}
		t.AppendRow(table.Row{e.Category, e.Name, size, e.AbsolutePath})
	}
	t.Render()

	fmt.Fprintf(out, "%d files, %s total", inv.TotalCount, humanize.Bytes(uint64(inv.TotalSize)))
	if inv.MissingCount > 0 {
		fmt.Fprintf(out, ", %d missing", inv.MissingCount)
	}
	fmt.Fprintln(out)
}

func renderCollectSummary(out io.Writer, result *collect.Result) {
	exec := result.Execution
	selCount, selSize := result.Inventory.SelectedStats()
	fmt.Fprintf(out, "Selected %d files (%s)\n", selCount, humanize.Bytes(uint64(selSize)))
	fmt.Fprintf(out, "Collected %d files to %s", exec.CopiedCount, result.Plan.DestRoot)
	if result.FailedCount > 0 {
		fmt.Fprintf(out, " (%d failed)", result.FailedCount)
	}
	fmt.Fprintln(out)

	if result.DocumentDest != "" {
		fmt.Fprintf(out, "Document: %s", result.DocumentDest)
		if result.RelinkApplied > 0 || result.RelinkSkipped > 0 {
			fmt.Fprintf(out, " (%d references relinked", result.RelinkApplied)
			if result.RelinkSkipped > 0 {
				fmt.Fprintf(out, ", %d skipped", result.RelinkSkipped)
			}
			fmt.Fprint(out, ")")
		}
		fmt.Fprintln(out)
	}

	if len(exec.Failures) > 0 {
		t := newTable(out)
		t.AppendHeader(table.Row{"Name", "Source", "Reason"})
		for _, f := range exec.Failures {
			t.AppendRow(table.Row{f.Ref.Name, f.Ref.AbsolutePath, f.Reason.Error()})
		}
		t.Render()
	}
	for _, e := range result.Inventory.Entries {
		if e.Selected && !e.Exists {
			fmt.Fprintf(out, "missing: %s (%s)\n", e.Name, e.AbsolutePath)
		}
	}
}

func renderDuplicates(out io.Writer, result *duplicates.Result) {
	if len(result.Report.Groups) == 0 {
		fmt.Fprintln(out, "No duplicate assets found")
		return
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"Hash", "Copies", "Wasted", "Files"})
	for _, g := range result.Report.Groups {
		files := ""
		for i, m := range g.Members {
			if i > 0 {
				files += "\n"
			}
			files += m.AbsolutePath
			if i == 0 {
				files += " (canonical)"
			}
		}
		t.AppendRow(table.Row{g.Hash[:12], len(g.Members), humanize.Bytes(uint64(g.WastedBytes)), files})
	}
	t.Render()

	fmt.Fprintf(out, "%d duplicate files, %s wasted\n",
		result.Report.DuplicateCount, humanize.Bytes(uint64(result.Report.WastedSize)))

	if result.SavedTo != "" {
		fmt.Fprintf(out, "Consolidated document saved to %s; rescan before collecting\n", result.SavedTo)
	}
}
