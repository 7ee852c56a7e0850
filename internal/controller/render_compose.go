package controller

import (
	"fmt"
	"strings"

	"github.com/gitpilot/gitpilot/internal/action"
	"github.com/gitpilot/gitpilot/internal/cellbuf"
	"github.com/gitpilot/gitpilot/internal/domain"
	"github.com/gitpilot/gitpilot/internal/viewmodel"
)

// compose writes one frame of the normal UI into buf: header, four panels,
// footer, and (if active) a dialog overlay (spec.md §4.4).
func compose(buf *cellbuf.Buffer, vm *viewmodel.ViewModel, width, height int) {
	buf.Clear()
	style := cellbuf.NewStyle()

	buf.SetString(0, 0, headerLine(vm.Header), style, cellbuf.NewRect(0, 0, width, 1))
	for _, p := range vm.Panels {
		drawPanel(buf, vm, p, style)
	}
	footer := footerLine(vm)
	buf.SetString(0, height-1, footer, style, cellbuf.NewRect(0, height-1, width, 1))

	if vm.HelpVisible {
		drawHelp(buf, width, height, style)
	}
	if vm.Dialog != nil {
		drawDialog(buf, *vm.Dialog, width, height, style)
	}
}

// composeTooSmall implements scenario 5: below the minimum terminal
// surface, the normal UI is replaced entirely.
func composeTooSmall(buf *cellbuf.Buffer, width, height int) {
	buf.Clear()
	msg := fmt.Sprintf("terminal too small (%dx%d, need 80x24) — press q to quit", width, height)
	if width > 0 && height > 0 {
		buf.SetString(0, 0, msg, cellbuf.NewStyle(), cellbuf.NewRect(0, 0, max(width, len(msg)+1), 1))
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// headerLine matches scenario 1's literal format:
// "g - [<repo>] | branch: main | ↑0 ↓0 | ✓ clean".
func headerLine(h viewmodel.Header) string {
	var branch string
	if h.Detached {
		branch = "detached@" + h.ShortHash
	} else {
		branch = h.Branch
	}
	clean := "✓ clean"
	if !h.Clean {
		clean = "● dirty"
	}
	return fmt.Sprintf("g - [%s] | branch: %s | ↑%d ↓%d | %s", h.RepoName, branch, h.Ahead, h.Behind, clean)
}

func footerLine(vm *viewmodel.ViewModel) string {
	if len(vm.Footer.Hints) > 0 {
		return strings.Join(vm.Footer.Hints, "  ")
	}
	hints := viewmodel.FooterHints(vm.FocusedPanel().Kind, vm.Mode)
	return strings.Join(hints, "  ")
}

func drawPanel(buf *cellbuf.Buffer, vm *viewmodel.ViewModel, p viewmodel.Panel, style cellbuf.Style) {
	r := p.Rect
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	title := panelTitle(p.Kind)
	if p.Focused {
		title = "[" + title + "]"
	}
	buf.SetString(r.X, r.Y, title, style, r)

	lines := panelLines(vm, p.Kind)
	for i, line := range lines {
		y := r.Y + 1 + i
		if y >= r.Bottom() {
			break
		}
		buf.SetString(r.X, y, line, style, r)
	}
}

func panelTitle(k action.PanelKind) string {
	switch k {
	case action.PanelStatus:
		return "Status"
	case action.PanelBranches:
		return "Branches"
	case action.PanelCommits:
		return "Commits"
	case action.PanelMain:
		return "Main"
	default:
		return ""
	}
}

func panelLines(vm *viewmodel.ViewModel, k action.PanelKind) []string {
	switch k {
	case action.PanelStatus:
		return statusLines(vm)
	case action.PanelBranches:
		return branchLines(vm)
	case action.PanelCommits:
		return commitLines(vm)
	case action.PanelMain:
		return mainLines(vm)
	default:
		return nil
	}
}

func statusLines(vm *viewmodel.ViewModel) []string {
	var out []string
	for i, fc := range vm.StatusList.Items {
		cursor := " "
		if i == vm.StatusList.Sel {
			cursor = ">"
		}
		out = append(out, fmt.Sprintf("%s %s %s", cursor, changeKindGlyph(fc.Kind), fc.Path))
	}
	if len(out) == 0 {
		out = []string{"(clean)"}
	}
	return out
}

func changeKindGlyph(k domain.ChangeKind) string {
	switch k {
	case domain.Added:
		return "A"
	case domain.Deleted:
		return "D"
	case domain.Renamed:
		return "R"
	case domain.Untracked:
		return "?"
	case domain.Conflicted:
		return "U"
	default:
		return "M"
	}
}

func branchLines(vm *viewmodel.ViewModel) []string {
	var out []string
	for i, b := range vm.BranchesList.Items {
		cursor := " "
		if i == vm.BranchesList.Sel {
			cursor = ">"
		}
		head := " "
		if b.IsHead {
			head = "*"
		}
		out = append(out, fmt.Sprintf("%s%s %s", cursor, head, b.Name))
	}
	return out
}

func commitLines(vm *viewmodel.ViewModel) []string {
	var out []string
	for i, cm := range vm.CommitsList.Items {
		cursor := " "
		if i == vm.CommitsList.Sel {
			cursor = ">"
		}
		out = append(out, fmt.Sprintf("%s %s %s", cursor, cm.ShortID, cm.Subject))
	}
	return out
}

func mainLines(vm *viewmodel.ViewModel) []string {
	switch vm.MainKind {
	case viewmodel.MainTextKind:
		return vm.MainText.Lines
	case viewmodel.MainDiffKind:
		var out []string
		for _, h := range vm.MainDiff.Hunks {
			out = append(out, h.Header)
			for _, l := range h.Lines {
				out = append(out, l.Content)
			}
		}
		return out
	default:
		return nil
	}
}

func drawHelp(buf *cellbuf.Buffer, width, height int, style cellbuf.Style) {
	lines := []string{
		"j/k: move   h/l: panel   tab: next panel   /: search   q: quit",
		"enter: stage/checkout/details   a: stage all   c: commit   ?: toggle help",
	}
	box := centered(width, height, len(lines)+2, maxLineLen(lines)+4)
	drawBox(buf, box, lines, style)
}

func drawDialog(buf *cellbuf.Buffer, d viewmodel.Dialog, width, height int, style cellbuf.Style) {
	var lines []string
	switch d.Tag {
	case viewmodel.DialogConfirm:
		lines = append(lines, d.Confirm.Message)
		for _, choice := range d.Confirm.Choices {
			lines = append(lines, fmt.Sprintf("(%c) %s", choice.Key, choice.Label))
		}
	case viewmodel.DialogInput:
		lines = []string{d.Input.Prompt + ":", d.Input.Value}
	case viewmodel.DialogSearch:
		lines = []string{"/" + d.Search.Query}
	case viewmodel.DialogProgress:
		lines = []string{d.Progress.Label, progressBar(d.Progress.Percent())}
	case viewmodel.DialogError:
		lines = []string{"Error", d.Error.Message}
	}
	box := centered(width, height, len(lines)+2, maxLineLen(lines)+4)
	drawBox(buf, box, lines, style)
}

func progressBar(pct int) string {
	const barWidth = 20
	filled := barWidth * pct / 100
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled), pct)
}

func maxLineLen(lines []string) int {
	m := 0
	for _, l := range lines {
		if len(l) > m {
			m = len(l)
		}
	}
	return m
}

func centered(width, height, boxH, boxW int) cellbuf.Rect {
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxH = height
	}
	x := (width - boxW) / 2
	y := (height - boxH) / 2
	return cellbuf.NewRect(x, y, boxW, boxH)
}

func drawBox(buf *cellbuf.Buffer, box cellbuf.Rect, lines []string, style cellbuf.Style) {
	buf.Fill(box, style)
	for i, line := range lines {
		y := box.Y + 1 + i
		if y >= box.Bottom() {
			break
		}
		buf.SetString(box.X+1, y, line, style, box)
	}
}
