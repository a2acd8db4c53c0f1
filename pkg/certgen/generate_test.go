package certgen

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suretrust/certgen-go/pkg/certgen/models"
	"github.com/suretrust/certgen-go/pkg/certgen/output"
	"github.com/suretrust/certgen-go/pkg/certgen/render"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
	"golang.org/x/image/font/gofont/goregular"
)

var header = []interface{}{
	"Batch Initials & Name", "Template", "Title", "Full_Name", "Domain", "From", "To", "Gpa", "Email",
}

// fixture lays out a working directory with fonts, templates and a table.
type fixture struct {
	dir string
	cfg Config
}

func newFixture(t *testing.T, rows ...[]interface{}) *fixture {
	t.Helper()
	dir := t.TempDir()

	fontsDir := filepath.Join(dir, "Fonts")
	require.NoError(t, os.MkdirAll(fontsDir, 0o755))
	for _, name := range []string{"times.ttf", "EBGaramond-Regular.ttf"} {
		require.NoError(t, os.WriteFile(filepath.Join(fontsDir, name), goregular.TTF, 0o644))
	}

	templatesDir := filepath.Join(dir, "Templates")
	require.NoError(t, os.MkdirAll(templatesDir, 0o755))
	writeTemplate(t, filepath.Join(templatesDir, "python.png"), 1200, 900)
	writeTemplate(t, filepath.Join(templatesDir, "tiny.png"), 260, 900)

	f := excelize.NewFile()
	defer f.Close()
	all := append([][]interface{}{header}, rows...)
	for i, values := range all {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		values := values
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}
	table := filepath.Join(dir, "sample.xlsx")
	require.NoError(t, f.SaveAs(table))

	return &fixture{
		dir: dir,
		cfg: Config{
			Table:        table,
			TemplatesDir: templatesDir,
			Fonts: FontPaths{
				Name:      filepath.Join(fontsDir, "times.ttf"),
				Paragraph: filepath.Join(fontsDir, "EBGaramond-Regular.ttf"),
			},
			OutputRoot: filepath.Join(dir, "12th Graduation Certificates"),
		},
	}
}

func writeTemplate(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	require.NoError(t, render.SavePNG(img, path))
}

func hasInk(img *image.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				return true
			}
		}
	}
	return false
}

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t)
	opts.Now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	opts.NewID = func() string { return "1a2b3c4d-0000-0000-0000-000000000000" }
	return opts
}

func row(batch, template, email string) []interface{} {
	return []interface{}{batch, template, "Dr", "Jane Doe", "Python Programming", `"01-Jan-2024"`, "30-Apr-2024", "9.2", email}
}

func TestGenerate(t *testing.T) {
	fx := newFixture(t,
		row("B12-Smith", "python.png", "smith@x.com"),
		row("B12-Smith", "python.png", "doe@x.com"),
		row("B13-Rao", "python.png", "rao@x.com"),
	)

	result, err := Generate(fx.cfg, testOptions(t))
	require.NoError(t, err)

	assert.Equal(t, "sample.xlsx", result.Table)
	assert.Equal(t, "Sheet1", result.Sheet)
	assert.Equal(t, 3, result.Records)
	require.Len(t, result.Certificates, 3)
	assert.Empty(t, result.Failed)
	assert.Equal(t, []string{
		output.BatchDir(fx.cfg.OutputRoot, "B12-Smith"),
		output.BatchDir(fx.cfg.OutputRoot, "B13-Rao"),
	}, result.CreatedDirs, "each batch folder is created once")

	first := result.Certificates[0]
	assert.Equal(t, filepath.Join(fx.cfg.OutputRoot, "B12-Smith", "smith@x.com.png"), first.Path)
	assert.Equal(t, "COMPLETION_PYTH_B12SMITH_2024_1A2B3C4D", first.ReferenceNumber)
	assert.Equal(t, "Dr.Jane Doe", first.HolderName)
	assert.Equal(t, 80, first.NameSize)
	assert.Greater(t, first.Lines, 1)
	assert.Equal(t, 2, first.Row)

	for _, cert := range result.Certificates {
		img, err := render.LoadTemplate(cert.Path)
		require.NoError(t, err, cert.Path)
		assert.Equal(t, image.Rect(0, 0, 1200, 900), img.Bounds())
		assert.True(t, hasInk(img, image.Rect(300, 367, 900, 470)), "name drawn on %s", cert.Path)
		assert.True(t, hasInk(img, image.Rect(181, 497, 1100, 700)), "paragraph drawn on %s", cert.Path)
	}

	require.NotEmpty(t, result.ManifestPath)
	m, err := output.ReadManifest(result.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, result.Certificates, m.Certificates)
}

func TestGenerateAbortsOnFirstFailure(t *testing.T) {
	fx := newFixture(t,
		row("B12-Smith", "python.png", "smith@x.com"),
		row("B12-Smith", "missing.png", "doe@x.com"),
		row("B12-Smith", "python.png", "rao@x.com"),
	)

	result, err := Generate(fx.cfg, testOptions(t))
	require.Error(t, err)

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 3, recErr.Row)
	assert.Equal(t, "doe@x.com", recErr.Email)
	assert.Equal(t, StageTemplate, recErr.Stage)
	assert.ErrorIs(t, err, ErrResourceUnavailable)

	require.NotNil(t, result)
	assert.Len(t, result.Certificates, 1)
	assert.FileExists(t, filepath.Join(fx.cfg.OutputRoot, "B12-Smith", "smith@x.com.png"))
	assert.NoFileExists(t, filepath.Join(fx.cfg.OutputRoot, "B12-Smith", "rao@x.com.png"))
	assert.NoFileExists(t, filepath.Join(fx.cfg.OutputRoot, output.ManifestName))
}

func TestGenerateKeepGoing(t *testing.T) {
	fx := newFixture(t,
		row("B12-Smith", "tiny.png", "smith@x.com"),
		row("B12-Smith", "python.png", "doe@x.com"),
	)

	opts := testOptions(t)
	opts.KeepGoing = true
	result, err := Generate(fx.cfg, opts)
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, StageName, result.Failed[0].Stage)
	assert.ErrorIs(t, result.Failed[0], ErrLayoutFailed)

	require.Len(t, result.Certificates, 1)
	assert.Equal(t, "doe@x.com", result.Certificates[0].Email)
	assert.FileExists(t, result.ManifestPath)
}

func TestGenerateDryRun(t *testing.T) {
	fx := newFixture(t, row("B12-Smith", "python.png", "smith@x.com"))

	opts := testOptions(t)
	opts.DryRun = true
	result, err := Generate(fx.cfg, opts)
	require.NoError(t, err)

	assert.Len(t, result.Certificates, 1)
	assert.Empty(t, result.ManifestPath)
	assert.Empty(t, result.CreatedDirs)
	assert.NoDirExists(t, fx.cfg.OutputRoot)
}

func TestGenerateMissingFont(t *testing.T) {
	fx := newFixture(t, row("B12-Smith", "python.png", "smith@x.com"))
	fx.cfg.Fonts.Paragraph = filepath.Join(fx.dir, "Fonts", "missing.ttf")

	_, err := Generate(fx.cfg, testOptions(t))
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.NoDirExists(t, fx.cfg.OutputRoot)
}

func TestGenerateMalformedTable(t *testing.T) {
	fx := newFixture(t, []interface{}{"B12-Smith", "python.png", "Dr", "", "Python", "a", "b", "9", "smith@x.com"})

	_, err := Generate(fx.cfg, testOptions(t))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestGenerateRejectsPathValuesBeforeWriting(t *testing.T) {
	fx := newFixture(t,
		row("B12-Smith", "python.png", "smith@x.com"),
		row("../../escaped", "python.png", "doe@x.com"),
	)

	_, err := Generate(fx.cfg, testOptions(t))
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.NoDirExists(t, fx.cfg.OutputRoot, "nothing is written when the table is rejected")
	assert.NoDirExists(t, filepath.Join(fx.dir, "..", "escaped"))
}

func TestGenerateOneStaysInsideRoot(t *testing.T) {
	fx := newFixture(t)
	opts := testOptions(t)

	nameFont, err := render.LoadFont(fx.cfg.Fonts.Name)
	require.NoError(t, err)
	defer nameFont.Close()
	paragraphFont, err := render.LoadFont(fx.cfg.Fonts.Paragraph)
	require.NoError(t, err)
	defer paragraphFont.Close()

	g := &generator{
		cfg:           fx.cfg,
		opts:          opts,
		layout:        opts.layout(),
		log:           opts.logger(),
		nameFont:      nameFont,
		paragraphFont: paragraphFont,
		result:        &Result{},
	}
	rec := models.Record{
		Row: 2, Batch: filepath.Join("..", "escaped"), Template: "python.png", Title: "Dr", FullName: "Jane Doe",
		Domain: "Python", From: "a", To: "b", Gpa: "9.2", Email: "smith@x.com",
	}

	_, err = g.generateOne(rec)
	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, StageSave, recErr.Stage)
	assert.ErrorIs(t, err, output.ErrOutsideRoot)
	assert.NoDirExists(t, filepath.Join(fx.dir, "escaped"))
}

func TestGenerateInvalidConfig(t *testing.T) {
	_, err := Generate(Config{}, testOptions(t))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestShouldWriteManifest(t *testing.T) {
	no := false
	yes := true
	tests := []struct {
		opts     Options
		expected bool
	}{
		{Options{}, true},
		{Options{DryRun: true}, false},
		{Options{WriteManifest: &no}, false},
		{Options{WriteManifest: &yes}, true},
		{Options{WriteManifest: &yes, DryRun: true}, false},
	}

	for _, tt := range tests {
		if got := tt.opts.ShouldWriteManifest(); got != tt.expected {
			t.Errorf("ShouldWriteManifest(%+v) = %v, expected %v", tt.opts, got, tt.expected)
		}
	}
}
