package board

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("39")  // bright blue
	colorDim    = lipgloss.Color("240") // dim gray
	colorMuted  = lipgloss.Color("245")
	colorText   = lipgloss.Color("252")
	colorBright = lipgloss.Color("15")
	colorSelect = lipgloss.Color("24") // dark blue bg
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent)

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText).
				MarginBottom(1)

	activeSectionTitleStyle = sectionTitleStyle.
				Foreground(colorAccent)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBright)

	subheadingStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginBottom(1)

	chipStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("17")).
			Padding(0, 1)

	selectedChipStyle = chipStyle.
				Foreground(colorBright).
				Background(colorSelect).
				Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(colorText)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(colorBright).
				Background(colorSelect)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBright)

	cardMetaStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	cardBodyStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	pageStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	currentPageStyle = pageStyle.
				Foreground(colorBright).
				Background(colorSelect).
				Bold(true)

	arrowStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Padding(0, 1)

	disabledArrowStyle = arrowStyle.
				Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorText).
			Background(lipgloss.Color("236"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Width(12)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBright).
				MarginBottom(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)
