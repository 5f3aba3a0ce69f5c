package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// FormatResults renders the batch results in the specified format.
func (r *Result) FormatResults(format string) (string, error) {
	switch format {
	case "json":
		return r.formatJSON()
	case "csv":
		return r.formatCSV()
	case "text":
		return r.formatText(), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// SaveResults writes the formatted results to a file or stdout.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}

	processed, failed := 0, 0
	for _, item := range r.Items {
		if item.Error != "" {
			failed++
		} else {
			processed++
		}
	}

	avg := time.Duration(0)
	throughput := 0.0
	if len(r.Items) > 0 && r.Duration > 0 {
		avg = r.Duration / time.Duration(len(r.Items))
		throughput = float64(len(r.Items)) / r.Duration.Seconds()
	}

	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total images: %d\n", len(r.Items))
	_, _ = fmt.Fprintf(os.Stdout, "  Processed: %d\n", processed)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Avg per image: %v\n", avg.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Throughput: %.1f images/sec\n", throughput)
}

func (r *Result) formatJSON() (string, error) {
	out := struct {
		Images []Item `json:"images"`
	}{Images: r.Items}

	bts, err := json.MarshalIndent(out, "", "  ")
	return string(bts), err
}

func (r *Result) formatCSV() (string, error) {
	rows := [][]string{{
		"file", "item_name", "brand", "product_line", "model_number",
		"capacity", "category", "condition", "estimated_price", "confidence", "error",
	}}

	for _, item := range r.Items {
		row := []string{item.File, "", "", "", "", "", "", "", "", "", item.Error}
		if res := item.Result; res != nil {
			price := ""
			if res.EstimatedPrice > 0 {
				price = strconv.FormatFloat(res.EstimatedPrice, 'f', 2, 64)
			}
			row = []string{
				item.File,
				res.ItemName,
				res.Brand,
				res.ProductLine,
				res.ModelNumber,
				res.Capacity,
				res.Category,
				res.Condition,
				price,
				strconv.FormatFloat(res.Confidence, 'f', 2, 64),
				"",
			}
		}
		rows = append(rows, row)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *Result) formatText() string {
	var sb strings.Builder
	for _, item := range r.Items {
		fmt.Fprintf(&sb, "%s:\n", item.File)
		if item.Error != "" {
			fmt.Fprintf(&sb, "  error: %s\n", item.Error)
			continue
		}
		res := item.Result
		fmt.Fprintf(&sb, "  name: %s (confidence %.2f)\n", res.ItemName, res.Confidence)
		if res.Brand != "" {
			fmt.Fprintf(&sb, "  brand: %s\n", res.Brand)
		}
		if res.ProductLine != "" {
			fmt.Fprintf(&sb, "  product line: %s\n", res.ProductLine)
		}
		if res.ModelNumber != "" {
			fmt.Fprintf(&sb, "  model: %s\n", res.ModelNumber)
		}
		if res.Capacity != "" {
			fmt.Fprintf(&sb, "  capacity: %s\n", res.Capacity)
		}
		if res.Category != "" {
			fmt.Fprintf(&sb, "  category: %s\n", res.Category)
		}
		if res.Condition != "" {
			fmt.Fprintf(&sb, "  condition: %s\n", res.Condition)
		}
		if res.EstimatedPrice > 0 {
			fmt.Fprintf(&sb, "  price: $%.2f\n", res.EstimatedPrice)
		}
		if res.Dimensions != "" {
			fmt.Fprintf(&sb, "  dimensions: %s\n", res.Dimensions)
		}
	}
	return sb.String()
}
