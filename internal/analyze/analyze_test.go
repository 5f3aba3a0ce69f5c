package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itemlens/itemlens/internal/extract"
	"github.com/itemlens/itemlens/internal/labeler"
	"github.com/itemlens/itemlens/internal/ocr"
	"github.com/itemlens/itemlens/internal/testutil"
)

type fakeEngine struct {
	res      ocr.Result
	err      error
	gotPaths []string
}

func (f *fakeEngine) Recognize(_ context.Context, path string) (ocr.Result, error) {
	f.gotPaths = append(f.gotPaths, path)
	return f.res, f.err
}

type fakeLabeler struct {
	labels []labeler.Label
	err    error
}

func (f *fakeLabeler) Labels(context.Context, string) ([]labeler.Label, error) {
	return f.labels, f.err
}

func textResult(text string) ocr.Result {
	return ocr.Result{Text: text, Confidence: 0.9}
}

func TestService_AnalyzeFile(t *testing.T) {
	engine := &fakeEngine{res: textResult(
		"SanDisk Ultra 128GB USB 3.0 Flash Drive\nModel: SDCZ48-128G-A46\n$19.99")}
	svc := NewService(DefaultConfig(), engine, nil, nil)

	res, err := svc.AnalyzeFile(context.Background(), "item.png")
	require.NoError(t, err)

	assert.Equal(t, "SanDisk Ultra 128GB", res.ItemName)
	assert.Equal(t, "SanDisk", res.Brand)
	assert.Equal(t, "Ultra", res.ProductLine)
	assert.Equal(t, "SDCZ48-128G-A46", res.ModelNumber)
	assert.Equal(t, "128GB", res.Capacity)
	assert.Equal(t, "USB Flash Drive", res.Category)
	assert.Equal(t, "", res.Condition)
	assert.InDelta(t, 19.99, res.EstimatedPrice, 1e-9)
	assert.Equal(t, "", res.Dimensions)
	assert.NotEmpty(t, res.Description)
	assert.Equal(t, engine.res.Text, res.RawText)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestService_AnalyzeFile_OCRFailureDegrades(t *testing.T) {
	engine := &fakeEngine{err: errors.New("tesseract missing")}
	svc := NewService(DefaultConfig(), engine, nil, nil)

	res, err := svc.AnalyzeFile(context.Background(), "item.png")
	require.NoError(t, err)

	assert.Equal(t, extract.UnknownItemName, res.ItemName)
	assert.Equal(t, insufficientTextDescription, res.Description)
	assert.Zero(t, res.Confidence)
}

func TestService_AnalyzeFile_LabelerFailureDegrades(t *testing.T) {
	engine := &fakeEngine{res: textResult("SanDisk Ultra 128GB USB 3.0 Flash Drive")}
	svc := NewService(DefaultConfig(), engine, &fakeLabeler{err: errors.New("model down")}, nil)

	res, err := svc.AnalyzeFile(context.Background(), "item.png")
	require.NoError(t, err)
	assert.Equal(t, "SanDisk", res.Brand)
}

func TestService_AnalyzeFile_InsufficientText(t *testing.T) {
	engine := &fakeEngine{res: textResult("64GB")}
	svc := NewService(DefaultConfig(), engine, nil, nil)

	res, err := svc.AnalyzeFile(context.Background(), "item.png")
	require.NoError(t, err)

	assert.Equal(t, Result{
		ItemName:    extract.UnknownItemName,
		Description: insufficientTextDescription,
	}, res)
}

func TestService_AnalyzeFile_LabelConfidenceFloor(t *testing.T) {
	text := "generic portable storage device\nhigh speed performance"

	low := &fakeLabeler{labels: []labeler.Label{{Text: "kingston flash drive", Confidence: 0.64}}}
	svc := NewService(DefaultConfig(), &fakeEngine{res: textResult(text)}, low, nil)
	res, err := svc.AnalyzeFile(context.Background(), "item.png")
	require.NoError(t, err)
	assert.Equal(t, "", res.Brand, "labels under the floor carry no brand evidence")

	high := &fakeLabeler{labels: []labeler.Label{{Text: "kingston flash drive", Confidence: 0.66}}}
	svc = NewService(DefaultConfig(), &fakeEngine{res: textResult(text)}, high, nil)
	res, err = svc.AnalyzeFile(context.Background(), "item.png")
	require.NoError(t, err)
	assert.Equal(t, "Kingston", res.Brand)
}

func TestService_AnalyzeFile_Deterministic(t *testing.T) {
	engine := &fakeEngine{res: textResult(
		"Samsung Evo Plus 256GB\nmicroSD memory card\nlike new, barely used")}
	lab := &fakeLabeler{labels: []labeler.Label{{Text: "memory card", Confidence: 0.9}}}
	svc := NewService(DefaultConfig(), engine, lab, nil)

	first, err := svc.AnalyzeFile(context.Background(), "item.png")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.AnalyzeFile(context.Background(), "item.png")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestService_AnalyzeImage_TempFileLifecycle(t *testing.T) {
	engine := &fakeEngine{res: textResult("SanDisk Ultra 128GB USB 3.0 Flash Drive")}
	svc := NewService(DefaultConfig(), engine, nil, nil)

	img := testutil.GenerateLabelImage(testutil.DefaultLabelImageConfig("SanDisk Ultra 128GB"))
	res, err := svc.AnalyzeImage(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "SanDisk", res.Brand)

	require.Len(t, engine.gotPaths, 1)
	assert.NoFileExists(t, engine.gotPaths[0])
}
