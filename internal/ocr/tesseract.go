package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Runner lets tests stub the external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		slog.Error("exec failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
	} else {
		slog.Debug("exec ok",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", time.Since(start).Milliseconds(),
			"stdout_bytes", out.Len(),
		)
	}
	return out.Bytes(), errb.Bytes(), err
}

// TesseractConfig configures the tesseract adapter.
type TesseractConfig struct {
	// Binary is the tesseract executable name or path.
	Binary string
	// Language is the recognition language passed to -l.
	Language string
	// PSM is the page segmentation mode. Mode 6 (uniform text block) works
	// well for product labels.
	PSM int
	// Runner executes the command; nil means run the real binary.
	Runner Runner
}

// DefaultTesseractConfig returns defaults for a system tesseract install.
func DefaultTesseractConfig() TesseractConfig {
	return TesseractConfig{
		Binary:   "tesseract",
		Language: "eng",
		PSM:      6,
	}
}

// Tesseract recognizes text by shelling out to the tesseract binary in TSV
// mode, which yields per-word confidences alongside the text.
type Tesseract struct {
	cfg TesseractConfig
}

// NewTesseract creates a tesseract engine from config, filling in defaults
// for zero values.
func NewTesseract(cfg TesseractConfig) *Tesseract {
	def := DefaultTesseractConfig()
	if cfg.Binary == "" {
		cfg.Binary = def.Binary
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.PSM <= 0 {
		cfg.PSM = def.PSM
	}
	if cfg.Runner == nil {
		cfg.Runner = execRunner{}
	}
	return &Tesseract{cfg: cfg}
}

// Recognize implements Engine. It runs one TSV invocation and reconstructs
// lines and the mean word confidence from it.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (Result, error) {
	args := []string{imagePath, "stdout", "-l", t.cfg.Language}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	args = append(args, "tsv")

	out, errb, err := t.cfg.Runner.Run(ctx, t.cfg.Binary, args...)
	if err != nil {
		return Result{}, fmt.Errorf("tesseract: %w (stderr: %s)", err, strings.TrimSpace(string(errb)))
	}
	return parseTSV(string(out)), nil
}

// lineKey identifies one text line in tesseract's TSV layout hierarchy.
type lineKey struct {
	block, par, line int
}

// parseTSV reconstructs text lines from word-level TSV rows. Columns:
// level page block par line word left top width height conf text; word rows
// have level 5 and a real confidence, structural rows carry conf -1.
func parseTSV(tsv string) Result {
	type lineAcc struct {
		key   lineKey
		words []string
	}
	var (
		lines   []*lineAcc
		current *lineAcc
		sum     float64
		n       int
	)

	for i, row := range strings.Split(tsv, "\n") {
		if i == 0 || row == "" {
			continue
		}
		cols := strings.Split(row, "\t")
		if len(cols) < 12 {
			continue
		}
		level, err := strconv.Atoi(cols[0])
		if err != nil || level != 5 {
			continue
		}
		word := strings.TrimSpace(cols[11])
		if word == "" {
			continue
		}

		if conf, err := strconv.ParseFloat(cols[10], 64); err == nil && conf >= 0 {
			sum += conf
			n++
		}

		key := lineKey{atoi(cols[2]), atoi(cols[3]), atoi(cols[4])}
		if current == nil || current.key != key {
			current = &lineAcc{key: key}
			lines = append(lines, current)
		}
		current.words = append(current.words, word)
	}

	res := Result{}
	for _, l := range lines {
		res.Lines = append(res.Lines, strings.Join(l.words, " "))
	}
	res.Text = strings.Join(res.Lines, "\n")
	if n > 0 {
		res.Confidence = sum / float64(n) / 100
	}
	return res
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
