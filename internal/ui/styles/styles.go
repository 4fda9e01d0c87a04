// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#E4E7EB"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#52606D", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#696969"} // hints, footers, disclaimer

	// Brand
	AccentColor    = lipgloss.AdaptiveColor{Light: "#5B3CC4", Dark: "#9B7BFF"}
	AccentAltColor = lipgloss.AdaptiveColor{Light: "#0B7285", Dark: "#66D9E8"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#CBD2D9", Dark: "#4A4A4A"}
	BorderFocusColor   = AccentColor

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#2F9E44", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#E67700", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#E03131", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#1971C2", Dark: "#54A0FF"}

	// Buttons
	ButtonTextColor          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor     = lipgloss.AdaptiveColor{Light: "#5B3CC4", Dark: "#5B3CC4"}
	ButtonDisabledBgColor    = lipgloss.AdaptiveColor{Light: "#CED4DA", Dark: "#2D2D2D"}
	ButtonDisabledTextColor  = lipgloss.AdaptiveColor{Light: "#868E96", Dark: "#777777"}
	ButtonSecondaryBgColor   = lipgloss.AdaptiveColor{Light: "#495057", Dark: "#2D3436"}
	ProgressGradientStartHex = "#5B3CC4"
	ProgressGradientEndHex   = "#66D9E8"

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSecondaryBgColor)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(ButtonDisabledTextColor).
				Background(ButtonDisabledBgColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	TaglineStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Italic(true)

	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	SuccessTextStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor).Bold(true)
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(StatusInfoColor)

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#8C8C8C"}

	SpinnerColor = AccentAltColor
)

// Button renders label as a primary button, or greyed out when disabled.
func Button(label string, enabled bool) string {
	if !enabled {
		return DisabledButtonStyle.Render(label)
	}
	return PrimaryButtonStyle.Render(label)
}
