package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"flowcast/internal/forecast"
	"flowcast/internal/format"
	"flowcast/internal/scenario"
)

func newWizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Build and run a forecast interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard()
		},
	}
	return cmd
}

// flowcastHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func flowcastHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(format.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(format.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(format.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(format.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(format.ColorFg).Background(format.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(format.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(format.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(format.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(format.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(format.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(format.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(format.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(format.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(format.ColorDim)

	return t
}

func runWizard() error {
	var (
		name       string
		backlogStr string
		historyStr string
		teamStr    string
		rateStr    string
		startStr   string
		deadline   string
		save       bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Placeholder("Q3 Release").
				Value(&name),
			huh.NewInput().
				Title("Backlog (remaining items)").
				Placeholder("80").
				Value(&backlogStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Throughput history (items per period, comma-separated)").
				Placeholder("6,8,5,9,7,6,10,7,8,6").
				Value(&historyStr).
				Validate(validateHistory),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Team size (blank to skip costing)").
				Value(&teamStr).
				Validate(validateOptionalInt),
			huh.NewInput().
				Title("Cost per person per period (blank to skip)").
				Value(&rateStr).
				Validate(validateOptionalFloat),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD, blank for none)").
				Placeholder("2026-03-02").
				Value(&startStr).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD, blank for none)").
				Placeholder("2026-05-25").
				Value(&deadline).
				Validate(validateOptionalDate),
			huh.NewConfirm().
				Title("Save as a scenario?").
				Value(&save),
		),
	).WithTheme(flowcastHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	backlog, _ := strconv.Atoi(backlogStr)
	history, err := forecast.ParseHistory(historyStr)
	if err != nil {
		return err
	}

	req := forecast.Request{
		ProjectName: name,
		Backlog:     backlog,
		History:     history,
		Sim:         forecast.SimulationConfig{Trials: cfg.Trials},
	}
	if teamStr != "" {
		req.TeamSize, _ = strconv.Atoi(teamStr)
	}
	if rateStr != "" {
		req.CostRate, _ = strconv.ParseFloat(rateStr, 64)
	}
	if startStr != "" {
		t, _ := time.Parse("2006-01-02", startStr)
		req.StartDate = &t
	}
	if deadline != "" {
		t, _ := time.Parse("2006-01-02", deadline)
		req.Deadline = &t
	}
	if (req.StartDate == nil) != (req.Deadline == nil) {
		return fmt.Errorf("start date and deadline must be provided together")
	}

	res, err := forecast.Forecast(req)
	if err != nil {
		return err
	}
	fmt.Println(format.FormatResult(res))

	if save {
		if name == "" {
			return fmt.Errorf("a project name is required to save a scenario")
		}
		repo, database, err := openScenarioRepo()
		if err != nil {
			return err
		}
		defer database.Close()

		sc := &scenario.Scenario{
			Name:      name,
			Backlog:   req.Backlog,
			History:   req.History,
			TeamSize:  req.TeamSize,
			CostRate:  req.CostRate,
			StartDate: req.StartDate,
			Deadline:  req.Deadline,
		}
		if err := repo.Create(context.Background(), sc); err != nil {
			return err
		}
		fmt.Printf("Saved scenario %q\n", name)
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative whole number")
	}
	return nil
}

func validateOptionalInt(s string) error {
	if s == "" {
		return nil
	}
	return validatePositiveInt(s)
}

func validateOptionalFloat(s string) error {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("enter a date as YYYY-MM-DD")
	}
	return nil
}

func validateHistory(s string) error {
	history, err := forecast.ParseHistory(s)
	if err != nil {
		return fmt.Errorf("enter comma-separated non-negative integers")
	}
	return forecast.ValidateHistory(history)
}
