package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"skeleton-creator/internal/creator/codegen"
	"skeleton-creator/internal/creator/models"
	"skeleton-creator/internal/creator/parser"
	"skeleton-creator/internal/creator/presets"

	"github.com/spf13/cobra"
)

// ============================================================
// skelgen: генератор лоадеров из командной строки
// ============================================================

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "skelgen",
		Short:        "Generate skeleton loader components",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newImportCmd(), newWatchCmd(), newPresetsCmd())
	return root
}

// ============================================================
// Output flags
// ============================================================

type outputFlags struct {
	mode      string
	width     float64
	height    float64
	speed     float64
	bg        string
	fg        string
	rtl       bool
	live      bool
	noImports bool
	name      string
	out       string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.mode, "mode", string(models.ReactDOM), "target framework: reactDom, reactNative, vue, angular, qwik, svg")
	fs.Float64Var(&f.width, "width", 0, "canvas width")
	fs.Float64Var(&f.height, "height", 0, "canvas height")
	fs.Float64Var(&f.speed, "speed", 0, "animation speed in seconds")
	fs.StringVar(&f.bg, "bg", "", "background color (#rgb or #rrggbb)")
	fs.StringVar(&f.fg, "fg", "", "foreground color (#rgb or #rrggbb)")
	fs.BoolVar(&f.rtl, "rtl", false, "right-to-left animation")
	fs.BoolVar(&f.live, "live", false, "emit the live preview variant instead of the export snippet")
	fs.BoolVar(&f.noImports, "no-imports", false, "omit import declarations")
	fs.StringVar(&f.name, "name", codegen.DefaultName, "component name")
	fs.StringVarP(&f.out, "out", "o", "", "write to file instead of stdout")
}

// apply переносит явно заданные флаги на дизайн.
func (f *outputFlags) apply(cmd *cobra.Command, d *models.Design) error {
	fs := cmd.Flags()
	if fs.Changed("mode") {
		m, err := models.ParseFramework(f.mode)
		if err != nil {
			return err
		}
		d.Mode = m
	}
	for _, dim := range []struct {
		flag  string
		value float64
		field *float64
	}{
		{"width", f.width, &d.Width},
		{"height", f.height, &d.Height},
		{"speed", f.speed, &d.Speed},
	} {
		if !fs.Changed(dim.flag) {
			continue
		}
		if dim.value < 0 || !models.Finite(dim.value) {
			return fmt.Errorf("%w: --%s=%v", models.ErrInvalidValue, dim.flag, dim.value)
		}
		*dim.field = dim.value
	}
	if fs.Changed("bg") {
		color, err := models.NormalizeColor(f.bg)
		if err != nil {
			return err
		}
		d.BackgroundColor = color
	}
	if fs.Changed("fg") {
		color, err := models.NormalizeColor(f.fg)
		if err != nil {
			return err
		}
		d.ForegroundColor = color
	}
	if fs.Changed("rtl") {
		d.RTL = f.rtl
	}
	return nil
}

func (f *outputFlags) render(d models.Design) (string, error) {
	engine, err := codegen.New()
	if err != nil {
		return "", err
	}
	if f.live {
		return engine.Live(d)
	}
	return engine.Snippet(d, codegen.Options{ImportDeclaration: !f.noImports, Name: f.name})
}

func (f *outputFlags) write(cmd *cobra.Command, text string) error {
	if f.out == "" || f.out == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(f.out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.out, err)
	}
	return nil
}

// generate собирает дизайн, применяет флаги и пишет результат.
func (f *outputFlags) generate(cmd *cobra.Command, d models.Design) error {
	if err := f.apply(cmd, &d); err != nil {
		return err
	}
	text, err := f.render(d)
	if err != nil {
		return err
	}
	return f.write(cmd, text)
}

// ============================================================
// Commands
// ============================================================

func newRenderCmd() *cobra.Command {
	var (
		flags  outputFlags
		preset string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a loader from a preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := designFromPreset(preset)
			if err != nil {
				return err
			}
			return flags.generate(cmd, d)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&preset, "preset", "facebook", "preset name, see `skelgen presets`")
	return cmd
}

func newImportCmd() *cobra.Command {
	var flags outputFlags
	cmd := &cobra.Command{
		Use:   "import FILE.svg",
		Short: "Render a loader from an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := designFromSVG(args[0])
			if err != nil {
				return err
			}
			return flags.generate(cmd, d)
		},
	}
	flags.register(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the preset catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tSIZE\tSHAPES")
			for _, p := range presets.Default().All() {
				fmt.Fprintf(w, "%s\t%s\t%gx%g\t%d\n", p.Name, p.Title, p.Width, p.Height, len(p.Shapes))
			}
			return w.Flush()
		},
	}
}

// ============================================================
// Design sources
// ============================================================

func designFromPreset(name string) (models.Design, error) {
	p, err := presets.Default().Lookup(name)
	if err != nil {
		return models.Design{}, err
	}
	d := models.Defaults()
	d.Draw = models.FromShapes(p.Shapes)
	d.Width = p.Width
	d.Height = p.Height
	return d, nil
}

func designFromSVG(path string) (models.Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Design{}, err
	}
	defer f.Close()

	doc, err := parser.ParseSVG(f)
	if err != nil {
		return models.Design{}, fmt.Errorf("%s: %w", path, err)
	}
	d := models.Defaults()
	d.Draw = models.FromMarkup(doc.Markup)
	if doc.Width > 0 {
		d.Width = doc.Width
	}
	if doc.Height > 0 {
		d.Height = doc.Height
	}
	return d, nil
}
