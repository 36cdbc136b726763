// Quilting: patch placement planner for the patchwork board game
//
// Places polyomino patches on a quilt board, fills a board automatically
// from a random draw, and exports the result as PDF, QR labels, PNG, DXF
// or Excel.
//
// Build:
//   go build -o quilting ./cmd/quilting
//
// Examples:
//   quilting                                  # demo board
//   quilting -fill 12 -algorithm genetic -pdf quilt.pdf
//   quilting -place T:1,0 -place LongI@90:8,4 -save game.json
//   quilting -import layout.xlsx -png quilt.png
//   quilting -load ~/.quilting/layouts/game.json -labels labels.pdf
//   quilting -place T:1,0 -place L:4,0 -undo 2 -redo 1 -hint LongI

package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/quilting/internal/board"
	"github.com/piwi3910/quilting/internal/engine"
	"github.com/piwi3910/quilting/internal/export"
	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/importer"
	"github.com/piwi3910/quilting/internal/model"
	"github.com/piwi3910/quilting/internal/project"
	"github.com/piwi3910/quilting/internal/render"
	"github.com/piwi3910/quilting/internal/session"
)

// moveList collects repeated -place flags.
type moveList []string

func (m *moveList) String() string { return strings.Join(*m, " ") }

func (m *moveList) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type options struct {
	configPath string
	width      int
	height     int
	name       string

	load    string
	imp     string
	dxfCell float64

	moves moveList
	undo  int
	redo  int
	hint  string

	fill       int
	algorithm  string
	seed       int64
	noRotation bool
	compare    bool

	save       string
	pdfPath    string
	labelsPath string
	pngPath    string
	dxfPath    string
	xlsxPath   string
	backupPath string

	noColor bool
	quiet   bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "config file (.json, .yaml or .yml)")
	flag.IntVar(&o.width, "width", 0, "board width in cells (0 uses the config)")
	flag.IntVar(&o.height, "height", 0, "board height in cells (0 uses the config)")
	flag.StringVar(&o.name, "name", "Quilt", "layout name")

	flag.StringVar(&o.load, "load", "", "load a saved layout (.json or .yaml)")
	flag.StringVar(&o.imp, "import", "", "import placements from .csv, .xlsx or .dxf")
	flag.Float64Var(&o.dxfCell, "dxf-cell", 1, "DXF drawing units per board cell")

	flag.Var(&o.moves, "place", "place a patch, Shape[@rotation]:x,y (repeatable)")
	flag.IntVar(&o.undo, "undo", 0, "undo the last N changes before output")
	flag.IntVar(&o.redo, "redo", 0, "redo N undone changes after -undo")
	flag.StringVar(&o.hint, "hint", "", "list where a patch fits, Shape[@rotation]")

	flag.IntVar(&o.fill, "fill", 0, "draw N random patches and place them automatically")
	flag.StringVar(&o.algorithm, "algorithm", "", "fill algorithm: greedy or genetic (empty uses the config)")
	flag.Int64Var(&o.seed, "seed", 0, "random seed for the draw and the genetic fill (0 uses the config)")
	flag.BoolVar(&o.noRotation, "no-rotation", false, "place patches only in their drawn orientation")
	flag.BoolVar(&o.compare, "compare", false, "try several fill strategies and keep the best")

	flag.StringVar(&o.save, "save", "", "save the layout (.json or .yaml)")
	flag.StringVar(&o.pdfPath, "pdf", "", "write a PDF layout report")
	flag.StringVar(&o.labelsPath, "labels", "", "write a PDF sheet of QR patch labels")
	flag.StringVar(&o.pngPath, "png", "", "write a PNG snapshot")
	flag.StringVar(&o.dxfPath, "dxf", "", "write patch outlines as DXF")
	flag.StringVar(&o.xlsxPath, "xlsx", "", "write the placement list as an Excel workbook")
	flag.StringVar(&o.backupPath, "backup", "", "write config and layout to a backup file")

	flag.BoolVar(&o.noColor, "no-color", false, "disable terminal colours")
	flag.BoolVar(&o.quiet, "quiet", false, "do not print the board")
	flag.Parse()
	return o
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("quilting: ")

	if err := model.ValidateCatalog(); err != nil {
		log.Fatalf("shape catalog: %v", err)
	}

	o := parseFlags()

	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		log.Fatalf("loading config %s: %v", o.configPath, err)
	}
	settings := model.DefaultFillSettings()
	cfg.ApplyToSettings(&settings)
	if o.algorithm != "" {
		settings.Algorithm = model.Algorithm(strings.ToLower(o.algorithm))
	}
	if o.seed != 0 {
		settings.Seed = o.seed
	}
	if o.noRotation {
		settings.AllowRotation = false
	}
	if settings.Algorithm != model.AlgorithmGreedy && settings.Algorithm != model.AlgorithmGenetic {
		log.Fatalf("unknown algorithm %q", settings.Algorithm)
	}

	s, err := startSession(o, cfg)
	if err != nil {
		log.Fatal(err)
	}

	for _, arg := range o.moves {
		move, err := session.ParseMove(arg)
		if err != nil {
			log.Fatal(err)
		}
		placed, err := s.Place(move)
		if err != nil {
			log.Printf("%v", err)
			continue
		}
		log.Printf("placed %s as %s", move, placed.Label)
	}

	var unplaced []model.Patch
	if o.fill > 0 {
		filled, rest := fill(o, settings, s.Board())
		s.Replace(filled, fmt.Sprintf("Fill %d", o.fill))
		unplaced = rest
	}

	for i := 0; i < o.undo; i++ {
		ok, err := s.Undo()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			log.Printf("nothing left to undo")
			break
		}
	}
	for i := 0; i < o.redo; i++ {
		ok, err := s.Redo()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			log.Printf("nothing left to redo")
			break
		}
	}

	if o.hint != "" {
		if err := hint(s, o.hint); err != nil {
			log.Fatal(err)
		}
	}

	b := s.Board()
	layout := s.Layout()

	if !o.quiet {
		viewer := render.NewViewer()
		viewer.Color = cfg.Color && !o.noColor
		viewer.Title = s.Name
		if err := viewer.Write(os.Stdout, b.Render()); err != nil {
			log.Fatal(err)
		}
		fmt.Print(viewer.Legend(layout.Placements))
		fmt.Println(render.Summary(b))
		if vac := b.Vacancies(); len(vac) > 0 {
			fmt.Printf("%d empty regions, largest %d cells\n", len(vac), vac[0].Size())
		}
	}
	for _, p := range unplaced {
		log.Printf("no room for %s (%d cells)", p, p.Cells())
	}

	if err := writeOutputs(o, cfg, settings, layout, unplaced); err != nil {
		log.Fatal(err)
	}

	if o.save != "" {
		if err := project.SaveRecent(o.save, layout, &cfg); err != nil {
			log.Fatalf("saving layout: %v", err)
		}
		if err := project.SaveAppConfig(o.configPath, cfg); err != nil {
			log.Printf("updating recent layouts: %v", err)
		}
		log.Printf("saved %s", o.save)
	}
}

// startSession builds the starting session from a saved layout, an
// import, or an empty board of the configured size. A loaded or imported
// layout is the first undo step. With no inputs, moves or fill it places
// the StripedStep demo patch.
func startSession(o options, cfg model.AppConfig) (*session.Session, error) {
	w, h := boardSize(o, cfg)
	b, err := board.New(w, h)
	if err != nil {
		return nil, err
	}
	s := session.New(o.name, b)

	switch {
	case o.load != "":
		layout, err := project.LoadLayout(o.load)
		if err != nil {
			return nil, err
		}
		return s, s.Load(layout)

	case o.imp != "":
		result := importFile(o.imp, o.dxfCell)
		for _, msg := range result.Warnings {
			log.Printf("import: %s", msg)
		}
		for _, msg := range result.Errors {
			log.Printf("import error: %s", msg)
		}
		if len(result.Placements) == 0 {
			return nil, fmt.Errorf("no placements imported from %s", o.imp)
		}
		layout := result.Layout(o.name)
		if result.Width == 0 || result.Height == 0 {
			layout.Width, layout.Height = w, h
		}
		return s, s.Load(layout)
	}

	if o.fill == 0 && len(o.moves) == 0 {
		demo := model.FromShape(model.ShapeStripedStep)
		if _, err := s.Place(session.Move{Patch: demo, Anchor: geom.Pt(3, 3)}); err != nil {
			return nil, fmt.Errorf("demo placement: %w", err)
		}
	}
	return s, nil
}

// hint logs every place the named patch fits on the current board.
func hint(s *session.Session, arg string) error {
	name, rot, _ := strings.Cut(arg, "@")
	shape, err := model.ParseShape(name)
	if err != nil {
		return fmt.Errorf("hint %q: %w", arg, err)
	}
	rotation, err := model.ParseRotation(rot)
	if err != nil {
		return fmt.Errorf("hint %q: %w", arg, err)
	}
	patch := model.FromShape(shape).Rotate(rotation)

	fits := s.Candidates(patch)
	if len(fits) == 0 {
		log.Printf("%s fits nowhere", patch)
		return nil
	}
	first := fits[0]
	log.Printf("%s fits in %d places, first %s:%d,%d", patch, len(fits),
		patch.Rotate(first.Rotation), first.Anchor.X, first.Anchor.Y)
	return nil
}

func boardSize(o options, cfg model.AppConfig) (int, int) {
	w, h := cfg.BoardWidth, cfg.BoardHeight
	if o.width > 0 {
		w = o.width
	}
	if o.height > 0 {
		h = o.height
	}
	return w, h
}

func importFile(path string, dxfCell float64) importer.ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return importer.ImportExcel(path)
	case ".dxf":
		return importer.ImportDXF(path, dxfCell)
	default:
		return importer.ImportCSV(path)
	}
}

// fill draws n patches and places them with the configured strategy.
func fill(o options, settings model.FillSettings, b *board.Board) (*board.Board, []model.Patch) {
	rng := rand.New(rand.NewSource(settings.Seed))
	patches := make([]model.Patch, o.fill)
	for i := range patches {
		patches[i] = model.FromShape(model.SampleUniform(rng))
	}

	if !o.compare {
		result := engine.New(settings).Fill(b, patches)
		return result.Board, result.Unplaced
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), b, patches)
	for _, r := range results {
		log.Printf("%-20s placed %d, %d cells (%.1f%%), %d buttons",
			r.Scenario.Name, r.PlacedCount, r.PlacedCells, r.CoveragePercent, r.Buttons)
	}
	best, _ := engine.Best(results)
	log.Printf("using %s", best.Scenario.Name)
	return best.Result.Board, best.Result.Unplaced
}

func writeOutputs(o options, cfg model.AppConfig, settings model.FillSettings, layout model.Layout, unplaced []model.Patch) error {
	if o.pdfPath != "" {
		if err := export.ExportPDF(o.pdfPath, []model.Layout{layout}, unplaced, settings); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		log.Printf("wrote %s", o.pdfPath)
	}
	if o.labelsPath != "" {
		if err := export.ExportLabels(o.labelsPath, layout); err != nil {
			return fmt.Errorf("label export: %w", err)
		}
		log.Printf("wrote %s", o.labelsPath)
	}
	if o.pngPath != "" {
		if err := export.ExportPNG(o.pngPath, layout, cfg.CellSize); err != nil {
			return fmt.Errorf("png export: %w", err)
		}
		log.Printf("wrote %s", o.pngPath)
	}
	if o.dxfPath != "" {
		if err := export.ExportDXF(o.dxfPath, layout, o.dxfCell); err != nil {
			return fmt.Errorf("dxf export: %w", err)
		}
		log.Printf("wrote %s", o.dxfPath)
	}
	if o.xlsxPath != "" {
		if err := export.ExportExcel(o.xlsxPath, layout); err != nil {
			return fmt.Errorf("excel export: %w", err)
		}
		log.Printf("wrote %s", o.xlsxPath)
	}
	if o.backupPath != "" {
		if err := project.ExportAllData(o.backupPath, cfg, []model.Layout{layout}); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		log.Printf("wrote %s", o.backupPath)
	}
	return nil
}
