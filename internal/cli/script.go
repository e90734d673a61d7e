package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/surface"
	"gopkg.in/yaml.v3"
)

// Script is a simulator session: a headless window per section and a list
// of host events replayed in order.
type Script struct {
	// ColdStart delays window attachment until an explicit attach step, so
	// links arrive while no surface exists.
	ColdStart bool        `yaml:"cold_start"`
	Bounds    domain.Rect `yaml:"bounds"`
	Steps     []Step      `yaml:"steps"`
}

// Step is one host event. Exactly one field is set.
type Step struct {
	Open      string                `yaml:"open,omitempty"`
	Continue  *domain.Activation    `yaml:"continue,omitempty"`
	Ready     bool                  `yaml:"ready,omitempty"`
	Attach    bool                  `yaml:"attach,omitempty"`
	Lifecycle domain.LifecycleEvent `yaml:"lifecycle,omitempty"`
	Navigate  *NavigateStep         `yaml:"navigate,omitempty"`
}

type NavigateStep struct {
	Section string `yaml:"section"`
	Screen  string `yaml:"screen"`
}

// Describe renders the step for output.
func (s Step) Describe() string {
	switch {
	case s.Open != "":
		return "open " + s.Open
	case s.Continue != nil:
		return fmt.Sprintf("continue %s %s", s.Continue.Type, s.Continue.URL)
	case s.Ready:
		return "ready"
	case s.Attach:
		return "attach"
	case s.Lifecycle != "":
		return "lifecycle " + string(s.Lifecycle)
	case s.Navigate != nil:
		return fmt.Sprintf("navigate %s/%s", s.Navigate.Section, s.Navigate.Screen)
	}
	return "empty"
}

// LoadScript reads a simulator script.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (Script, error) {
	s := Script{Bounds: domain.Rect{W: 390, H: 844}}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range s.Steps {
		if step.Describe() == "empty" {
			return Script{}, fmt.Errorf("step %d: no event", i+1)
		}
	}
	return s, nil
}

// Simulation runs a Script against an App.
type Simulation struct {
	App    *waypoint.App
	Out    io.Writer
	Style  *Styler
	Scenes map[string]*surface.Scene
}

// NewSimulation prepares a simulation writing its report to out.
func NewSimulation(app *waypoint.App, out io.Writer) *Simulation {
	return &Simulation{
		App:    app,
		Out:    out,
		Style:  NewStyler(out),
		Scenes: make(map[string]*surface.Scene),
	}
}

// Run replays script and prints each step's outcome followed by the final
// section states.
func (sim *Simulation) Run(ctx context.Context, script Script) error {
	cancel := sim.App.Outputs().Subscribe(func(o waypoint.Output) {
		fmt.Fprintf(sim.Out, "    %s %s %s %s\n", sim.Style.Dim("->"), o.Section, o.Kind, o.Screen)
	})
	defer cancel()

	if !script.ColdStart {
		if err := sim.attach(ctx, script.Bounds); err != nil {
			return err
		}
	}

	for i, step := range script.Steps {
		fmt.Fprintf(sim.Out, "%2d. %s\n", i+1, step.Describe())
		if err := sim.step(ctx, script, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	states, err := sim.App.States(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(sim.Out, FormatStates(states))
	return nil
}

func (sim *Simulation) step(ctx context.Context, script Script, step Step) error {
	switch {
	case step.Open != "":
		sim.report(sim.App.Open(ctx, step.Open))
	case step.Continue != nil:
		act := *step.Continue
		if act.Type == "" {
			act.Type = domain.ActivationBrowsingWeb
		}
		sim.report(sim.App.Continue(ctx, act))
	case step.Ready:
		if in := sim.App.Ready(ctx); in != nil {
			sim.report(in, nil)
		} else {
			fmt.Fprintf(sim.Out, "    %s\n", sim.Style.Dim("nothing pending"))
		}
	case step.Attach:
		return sim.attach(ctx, script.Bounds)
	case step.Lifecycle != "":
		sim.App.Notify(ctx, step.Lifecycle)
	case step.Navigate != nil:
		return sim.App.Navigate(ctx, step.Navigate.Section, step.Navigate.Screen, nil)
	}
	return nil
}

func (sim *Simulation) attach(ctx context.Context, bounds domain.Rect) error {
	for _, name := range sim.App.Sections() {
		if _, ok := sim.Scenes[name]; ok {
			continue
		}
		scene := surface.NewScene(bounds)
		scene.SetRoot(surface.NewNode(name+"/root", bounds))
		if err := sim.App.Attach(ctx, name, scene); err != nil {
			return err
		}
		sim.Scenes[name] = scene
	}
	return nil
}

func (sim *Simulation) report(in domain.Intent, err error) {
	if err != nil {
		fmt.Fprintf(sim.Out, "    %s %v\n", sim.Style.Reject("rejected"), err)
		return
	}
	data, _ := json.Marshal(domain.Envelope(in))
	fmt.Fprintf(sim.Out, "    %s %s\n", sim.Style.Accept("accepted"), data)
}

// FormatStates renders section states sorted by section name.
func FormatStates(states map[string]string) string {
	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", name, states[name])
	}
	return b.String()
}
