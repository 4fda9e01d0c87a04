package recognition

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/petsense/internal/keys"
	"github.com/zjrosen/petsense/internal/ui/help"
	"github.com/zjrosen/petsense/internal/ui/styles"
	"github.com/zjrosen/petsense/internal/workflow"
)

const title = "Breed recognition"

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 60
	}
	contentWidth := max(min(width-4, 72), 20)

	d := m.wf.Display()
	var sections []string

	back := zone.Mark(ZoneBack, styles.HintStyle.Render("← back"))
	sections = append(sections, back+"  "+styles.TitleStyle.Render(title), "")

	if m.mode == modeFiles {
		sections = append(sections, styles.HintStyle.Render("Choose a photo  (esc to cancel)"), m.files.View())
		return m.frame(strings.Join(sections, "\n"))
	}

	sections = append(sections, zone.Mark(ZoneAdd, styles.Button("Add photo", !m.wf.Destroyed())), "")
	sections = append(sections, m.previewPanel(d, contentWidth))

	if m.cfg.ShowTip {
		sections = append(sections, styles.HintStyle.Render(styles.Wrap(help.Tip, contentWidth)))
	}

	if m.mode == modeCapturing {
		sections = append(sections, "", m.spinner.View()+" Waiting for the camera...")
	}

	if d.ShowProgress {
		sections = append(sections, "", styles.InfoTextStyle.Render("Processing image..."), m.progress.ViewAs(d.Progress))
	}

	if d.ShowPreview {
		sections = append(sections, "", zone.Mark(ZoneSubmit, styles.Button("Show result", d.SubmitEnabled)))
	}

	switch d.Message {
	case workflow.MessageProcessing:
		sections = append(sections, "", m.spinner.View()+" "+styles.InfoTextStyle.Render(d.Text))
	case workflow.MessageSuccess:
		sections = append(sections, "", styles.SuccessTextStyle.Render(styles.Wrap(d.Text, contentWidth)))
	case workflow.MessageFailure:
		sections = append(sections, "",
			styles.ErrorTextStyle.Render(d.Text),
			styles.HintStyle.Render(failureHint(d.Reason)))
	}

	if m.cfg.ShowDisclaimer {
		sections = append(sections, "", styles.HintStyle.Render(styles.Wrap(help.Disclaimer, contentWidth)))
	}

	sections = append(sections, "", m.help.View(keys.Recognition))
	return m.frame(strings.Join(sections, "\n"))
}

func (m Model) previewPanel(d workflow.DisplayModel, width int) string {
	body := styles.HintStyle.Render("No photo selected")
	if d.ShowPreview {
		body = styles.TruncatePath(d.Preview.URI, width-4)
		if ct := d.Preview.ContentType; ct != "" {
			body += "\n" + styles.HintStyle.Render(ct)
		}
	}
	return styles.Panel{
		Title:   "Photo",
		Width:   width,
		Focused: d.ShowPreview,
		Muted:   !d.ShowPreview,
	}.Render(body)
}

// frame pads the content and layers the active overlays on top.
func (m Model) frame(content string) string {
	view := lipgloss.NewStyle().Padding(1, 2).Render(content)

	if m.mode == modeChooser {
		view = m.chooser.Overlay(view)
	}
	if m.notice != nil {
		view = m.notice.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return view
}
