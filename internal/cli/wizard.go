package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ganttHuhTheme returns a huh theme built from the active palette.
func ganttHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(ganttHuhTheme()).WithShowHelp(false)
}

func monthOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], domain.MonthsPerYear)
	for m := range opts {
		opts[m] = huh.NewOption(domain.MonthName(m), m)
	}
	return opts
}

func weekOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], domain.WeeksPerMonth)
	for w := range opts {
		opts[w] = huh.NewOption(fmt.Sprintf("Week %d", w+1), w)
	}
	return opts
}

func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}

func validateRequired(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func validateColor(s string) error {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return domain.ValidateColor(s)
}

// scheduleFields are the form values of a schedule.
type scheduleFields struct {
	month    int
	week     int
	duration string
}

func newScheduleFields(s domain.Schedule) scheduleFields {
	return scheduleFields{month: s.StartMonth, week: s.StartWeekOffset, duration: strconv.Itoa(s.DurationWeeks)}
}

func (f scheduleFields) schedule() domain.Schedule {
	d, _ := strconv.Atoi(strings.TrimSpace(f.duration))
	return domain.Schedule{StartMonth: f.month, StartWeekOffset: f.week, DurationWeeks: d}
}

func (f *scheduleFields) fields() []huh.Field {
	return []huh.Field{
		huh.NewSelect[int]().Title("Start month").Options(monthOptions()...).Value(&f.month),
		huh.NewSelect[int]().Title("Start week").Options(weekOptions()...).Value(&f.week),
		huh.NewInput().Title("Duration (weeks)").Value(&f.duration).
			Validate(validateIntRange(1, domain.TotalWeeks)),
	}
}

// projectFields are the form values of the project modal, including its
// stage list.
type projectFields struct {
	name         string
	sched        scheduleFields
	progress     string
	color        string
	showProgress bool
	link         string

	stages    []domain.Stage
	stageEdits []*stageFields
	remove    []int
	addStages string
}

func newProjectFields(p domain.Project) *projectFields {
	f := &projectFields{
		name:         p.Name,
		sched:        newScheduleFields(p.Schedule),
		progress:     strconv.Itoa(p.Progress),
		color:        p.Color,
		showProgress: p.ShowProgress,
		link:         p.DriveLink,
		stages:       append([]domain.Stage(nil), p.Stages...),
		addStages:    "0",
	}
	for _, st := range p.Stages {
		f.stageEdits = append(f.stageEdits, newStageFields(st))
	}
	return f
}

// apply copies the form values onto p and rebuilds p.Stages: edited stages
// keep their IDs, removed ones are dropped and added ones start with the
// project. Out-of-grid schedules are clamped by the service on save.
func (f *projectFields) apply(p *domain.Project) {
	p.Name = strings.TrimSpace(f.name)
	p.Schedule = f.sched.schedule()
	p.Progress, _ = strconv.Atoi(strings.TrimSpace(f.progress))
	p.Color = domain.NormalizeColor(f.color)
	p.ShowProgress = f.showProgress
	p.DriveLink = strings.TrimSpace(f.link)

	removed := make(map[int]bool, len(f.remove))
	for _, i := range f.remove {
		removed[i] = true
	}
	stages := make([]domain.Stage, 0, len(f.stages))
	for i, st := range f.stages {
		if removed[i] {
			continue
		}
		f.stageEdits[i].apply(&st)
		stages = append(stages, st)
	}
	add, _ := strconv.Atoi(strings.TrimSpace(f.addStages))
	for range add {
		stages = append(stages, domain.Stage{
			Name: domain.DefaultStageName(len(stages) + 1),
			Schedule: domain.Schedule{
				StartMonth:      p.Schedule.StartMonth,
				StartWeekOffset: p.Schedule.StartWeekOffset,
				DurationWeeks:   domain.WeeksPerMonth,
			},
		})
	}
	p.Stages = stages
}

// maxAddedStages bounds the "add stages" input of the project modal.
const maxAddedStages = 10

func projectForm(f *projectFields) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&f.name).Validate(validateRequired("name")),
		),
		huh.NewGroup(f.sched.fields()...),
		huh.NewGroup(
			huh.NewInput().Title("Progress (%)").Value(&f.progress).Validate(validateIntRange(0, 100)),
			huh.NewConfirm().Title("Show percentage on the bar?").Value(&f.showProgress),
			huh.NewInput().Title("Colour").Description("#RRGGBB").Value(&f.color).Validate(validateColor),
			huh.NewInput().Title("Google Drive link").Value(&f.link),
		),
	}
	for i, sf := range f.stageEdits {
		fields := append([]huh.Field{
			huh.NewInput().Title(fmt.Sprintf("Stage %d name", i+1)).Value(&sf.name).Validate(validateRequired("name")),
		}, sf.sched.fields()...)
		groups = append(groups, huh.NewGroup(fields...))
	}

	var last []huh.Field
	if len(f.stages) > 0 {
		opts := make([]huh.Option[int], len(f.stages))
		for i, st := range f.stages {
			opts[i] = huh.NewOption(st.Name, i)
		}
		last = append(last, huh.NewMultiSelect[int]().Title("Remove stages").Options(opts...).Value(&f.remove))
	}
	last = append(last, huh.NewInput().Title("Add stages").Value(&f.addStages).
		Validate(validateIntRange(0, maxAddedStages)))
	groups = append(groups, huh.NewGroup(last...))

	return newForm(groups...)
}

// stageFields are the form values of one stage.
type stageFields struct {
	name  string
	sched scheduleFields
}

func newStageFields(st domain.Stage) *stageFields {
	return &stageFields{name: st.Name, sched: newScheduleFields(st.Schedule)}
}

func (f *stageFields) apply(st *domain.Stage) {
	st.Name = strings.TrimSpace(f.name)
	st.Schedule = f.sched.schedule()
}

func stageForm(f *stageFields) *huh.Form {
	fields := append([]huh.Field{
		huh.NewInput().Title("Stage name").Value(&f.name).Validate(validateRequired("name")),
	}, f.sched.fields()...)
	return newForm(huh.NewGroup(fields...))
}

func nameForm(title string, value *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title(title).Value(value).Validate(validateRequired("name")),
	))
}

func yearForm(value *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Year").Value(value).Validate(validateIntRange(domain.MinYear, domain.MaxYear)),
	))
}

func commentForm(author, text *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Your name").Value(author).Validate(validateRequired("name")),
		huh.NewText().Title("Comment").Value(text).Validate(validateRequired("comment")),
	))
}

func rangeForm(r *rangeFields) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewSelect[int]().Title("From month").Options(monthOptions()...).Value(&r.start),
		huh.NewSelect[int]().Title("To month").Options(monthOptions()...).Value(&r.end),
	))
}

type rangeFields struct {
	start, end int
}

func confirmForm(question string, ok *bool) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewConfirm().Title(question).Affirmative("Yes").Negative("No").Value(ok),
	))
}
