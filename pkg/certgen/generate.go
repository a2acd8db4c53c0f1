package certgen

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
	"github.com/suretrust/certgen-go/pkg/certgen/output"
	"github.com/suretrust/certgen-go/pkg/certgen/parser"
	"github.com/suretrust/certgen-go/pkg/certgen/render"
	"go.uber.org/zap"
)

// Result summarizes a batch run.
type Result struct {
	// Table is the workbook file name (no path).
	Table string
	Sheet string
	// Records is the number of records read from the table.
	Records      int
	Certificates []models.Certificate
	// Failed holds the records skipped in KeepGoing mode.
	Failed []*RecordError
	// CreatedDirs lists batch folders created by this run.
	CreatedDirs []string
	// ManifestPath is empty when no manifest was written.
	ManifestPath string
}

// generator holds the state shared by all records of one run.
type generator struct {
	cfg           Config
	opts          Options
	layout        Layout
	log           *zap.Logger
	nameFont      *render.Font
	paragraphFont *render.Font
	result        *Result
}

// Generate reads every record of cfg.Table and writes one certificate image
// per record to <OutputRoot>/<Batch>/<Email>.png. Records are processed in
// sheet order. The first failing record stops the run with a *RecordError
// unless opts.KeepGoing is set; the partial Result is returned either way.
func Generate(cfg Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	table, err := parser.OpenTable(cfg.Table, parser.TableOptions{Sheet: cfg.Sheet, Range: cfg.Range})
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	log.Info("table loaded",
		zap.String("table", table.BookName),
		zap.String("sheet", table.Sheet),
		zap.Stringer("bounds", table.Bounds),
		zap.Int("records", len(table.Records)),
	)

	nameFont, err := render.LoadFont(cfg.Fonts.Name)
	if err != nil {
		return nil, err
	}
	defer nameFont.Close()

	paragraphFont, err := render.LoadFont(cfg.Fonts.Paragraph)
	if err != nil {
		return nil, err
	}
	defer paragraphFont.Close()

	g := &generator{
		cfg:           cfg,
		opts:          opts,
		layout:        opts.layout(),
		log:           log,
		nameFont:      nameFont,
		paragraphFont: paragraphFont,
		result: &Result{
			Table:   table.BookName,
			Sheet:   table.Sheet,
			Records: len(table.Records),
		},
	}

	for _, rec := range table.Records {
		cert, err := g.generateOne(rec)
		if err != nil {
			var recErr *RecordError
			if !errors.As(err, &recErr) {
				recErr = NewRecordError(rec, StageSave, err)
			}
			log.Error("certificate failed",
				zap.Int("row", rec.Row),
				zap.String("email", rec.Email),
				zap.String("stage", string(recErr.Stage)),
				zap.Error(recErr.Err),
			)
			if !opts.KeepGoing {
				return g.result, recErr
			}
			g.result.Failed = append(g.result.Failed, recErr)
			continue
		}
		g.result.Certificates = append(g.result.Certificates, *cert)
	}

	if opts.ShouldWriteManifest() && len(g.result.Certificates) > 0 {
		path, err := output.WriteManifest(cfg.OutputRoot, &models.Manifest{
			Table:        table.BookName,
			Sheet:        table.Sheet,
			GeneratedAt:  opts.now(),
			Certificates: g.result.Certificates,
		}, opts.PrettyManifest)
		if err != nil {
			return g.result, err
		}
		g.result.ManifestPath = path
		log.Info("manifest written", zap.String("path", path))
	}

	log.Info("batch finished",
		zap.Int("generated", len(g.result.Certificates)),
		zap.Int("failed", len(g.result.Failed)),
		zap.Bool("dry_run", opts.DryRun),
	)
	return g.result, nil
}

// generateOne loads the record's template, draws the name and the paragraph
// and saves the image.
func (g *generator) generateOne(rec models.Record) (*models.Certificate, error) {
	templatePath := filepath.Join(g.cfg.TemplatesDir, rec.Template)
	img, err := render.LoadTemplate(templatePath)
	if err != nil {
		return nil, NewRecordError(rec, StageTemplate, err)
	}

	img, fit, err := render.FitName(img, g.nameFont, rec.DisplayName(), g.layout.Name)
	if err != nil {
		return nil, NewRecordError(rec, StageName, err)
	}

	img, lines, err := render.LayoutParagraph(img, g.paragraphFont, rec.Domain, rec.From, rec.To, rec.Gpa, g.layout.Paragraph)
	if err != nil {
		return nil, NewRecordError(rec, StageParagraph, err)
	}

	path := output.CertificatePath(g.cfg.OutputRoot, rec.Batch, rec.Email)
	if err := output.CheckWithin(g.cfg.OutputRoot, path); err != nil {
		return nil, NewRecordError(rec, StageSave, err)
	}
	if !g.opts.DryRun {
		dir := output.BatchDir(g.cfg.OutputRoot, rec.Batch)
		created, err := output.EnsureDir(dir)
		if err != nil {
			return nil, NewRecordError(rec, StageSave, err)
		}
		if created {
			g.result.CreatedDirs = append(g.result.CreatedDirs, dir)
			g.log.Debug("batch folder created", zap.String("dir", dir))
		}
		if err := render.SavePNG(img, path); err != nil {
			return nil, NewRecordError(rec, StageSave, err)
		}
	}

	issued := g.opts.now()
	cert := &models.Certificate{
		ReferenceNumber: ReferenceNumber(rec, issued, g.opts.newID()),
		Row:             rec.Row,
		HolderName:      rec.DisplayName(),
		Course:          rec.Domain,
		Batch:           rec.Batch,
		Email:           rec.Email,
		Template:        rec.Template,
		Path:            path,
		NameSize:        fit.Size,
		Lines:           len(lines),
		IssuedAt:        issued,
	}

	g.log.Info("certificate generated",
		zap.Int("row", rec.Row),
		zap.String("email", rec.Email),
		zap.String("path", path),
		zap.Int("name_size", fit.Size),
		zap.Int("lines", len(lines)),
	)
	return cert, nil
}
