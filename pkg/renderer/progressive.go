package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// ProgressiveConfig contains configuration for parallel progressive rendering
type ProgressiveConfig struct {
	TileSize       int // Size of each square tile in pixels
	InitialSamples int // Samples per pixel for the first preview pass
	MaxPasses      int // Number of passes; the last one reaches SamplesPerPixel
	NumWorkers     int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       64,
		InitialSamples: 1,
		MaxPasses:      7,
		NumWorkers:     0, // Auto-detect CPU count
	}
}

// Validate checks the tiling and pass settings
func (c ProgressiveConfig) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTileSize, c.TileSize)
	}
	if c.MaxPasses <= 0 {
		return fmt.Errorf("renderer: max passes must be positive, got %d", c.MaxPasses)
	}
	if c.InitialSamples <= 0 {
		return fmt.Errorf("%w: initial samples %d", ErrInvalidSamples, c.InitialSamples)
	}
	return nil
}

// ProgressiveRaytracer renders tiles in parallel over several passes, each
// pass refining the same per-pixel accumulators.
type ProgressiveRaytracer struct {
	width, height int
	config        ProgressiveConfig
	totalSamples  int
	tiles         []*Tile        // Tile management
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	raytracer     *Raytracer     // Shared by all workers
	workerPool    *WorkerPool    // Worker pool for parallel processing
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(scene Scene, sampling SamplingConfig, config ProgressiveConfig) (*ProgressiveRaytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	raytracer, err := NewRaytracer(scene, sampling)
	if err != nil {
		return nil, err
	}

	// Passes beyond one sample each would add nothing
	config.MaxPasses = min(config.MaxPasses, sampling.SamplesPerPixel)
	config.InitialSamples = min(config.InitialSamples, sampling.SamplesPerPixel)

	tiles := NewTileGrid(sampling.Width, sampling.Height, config.TileSize, sampling.Seed)

	pixelStats := make([][]PixelStats, sampling.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, sampling.Width)
	}

	return &ProgressiveRaytracer{
		width:        sampling.Width,
		height:       sampling.Height,
		config:       config,
		totalSamples: sampling.SamplesPerPixel,
		tiles:        tiles,
		pixelStats:   pixelStats,
		raytracer:    raytracer,
		workerPool:   NewWorkerPool(raytracer, len(tiles), config.NumWorkers),
	}, nil
}

// Config returns the effective progressive configuration
func (pr *ProgressiveRaytracer) Config() ProgressiveConfig {
	return pr.config
}

// NumWorkers returns the size of the worker pool
func (pr *ProgressiveRaytracer) NumWorkers() int {
	return pr.workerPool.GetNumWorkers()
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 {
		return pr.totalSamples
	}

	// For multiple passes: first pass is quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.totalSamples - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	targetSamples := pr.config.InitialSamples + (passNumber-1)*samplesPerPass

	// The final pass always tops up to the full count
	if passNumber >= pr.config.MaxPasses {
		targetSamples = pr.totalSamples
	}

	return targetSamples
}

// RenderPass renders a single progressive pass using parallel processing.
// When ctx is cancelled, tiles not yet started are skipped and the pass
// returns an error wrapping ErrInterrupted.
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int, tileCallback func(TileCompletionResult)) (*Frame, RenderStats, error) {
	start := time.Now()
	targetSamples := pr.getSamplesForPass(passNumber)

	logger.Infof("Pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	pr.workerPool.Start()

	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Ctx:           ctx,
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
	}

	// Collect every result so the next pass starts from an empty queue
	var passErr error
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, errors.New("renderer: worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if passErr == nil {
				passErr = result.Error
			}
			continue
		}

		tile := pr.tiles[result.TaskID]
		tile.PassesCompleted++

		// Callbacks are dispatched from this goroutine only
		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:       tile.Bounds.Min.X / pr.config.TileSize,
				TileY:       tile.Bounds.Min.Y / pr.config.TileSize,
				TileFrame:   pr.extractTileFrame(tile),
				PassNumber:  passNumber,
				TileNumber:  i + 1,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.MaxPasses,
			})
		}
	}
	if passErr != nil {
		return nil, RenderStats{}, fmt.Errorf("%w: pass %d: %v", ErrInterrupted, passNumber, passErr)
	}

	frame, stats := pr.assembleCurrentFrame(targetSamples)
	stats.RenderTime = time.Since(start)
	return frame, stats, nil
}

// Close stops the worker pool. The raytracer cannot render afterwards.
func (pr *ProgressiveRaytracer) Close() {
	pr.workerPool.Stop()
}

// extractTileFrame copies a tile's current pixels into a frame of its own
func (pr *ProgressiveRaytracer) extractTileFrame(tile *Tile) *Frame {
	bounds := tile.Bounds
	frame := NewFrame(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			frame.SetPixel(x-bounds.Min.X, y-bounds.Min.Y, pr.pixelStats[y][x].GetColor())
		}
	}

	return frame
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Frame      *Frame
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int    // Tile coordinates (not pixel coordinates)
	TileY      int
	TileFrame  *Frame // Pixels of just this tile
	PassNumber int    // Which pass this tile was rendered in

	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders every pass on a background goroutine and reports
// through channels. If options.TileUpdates is false the tile channel is
// closed immediately. The worker pool is stopped when rendering ends.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)
		defer pr.Close()

		logger.Infof("Starting progressive rendering with %d passes", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				logger.Infof("Rendering cancelled before pass %d", pass)
				errChan <- fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
				return
			default:
			}

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// Slow consumers miss tile previews, never passes
					}
				}
			}

			frame, stats, err := pr.RenderPass(ctx, pass, tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			logger.Infof("Pass %d completed in %v (%.0f samples/pixel)", pass, stats.RenderTime, stats.AverageSamples)

			isLast := pass == pr.config.MaxPasses
			select {
			case passChan <- PassResult{PassNumber: pass, Frame: frame, Stats: stats, IsLast: isLast}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}

// Render runs every pass and returns the final frame
func (pr *ProgressiveRaytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	start := time.Now()
	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})

	var last PassResult
	for result := range passChan {
		last = result
	}
	if err := <-errChan; err != nil {
		return nil, RenderStats{}, err
	}
	if !last.IsLast {
		return nil, RenderStats{}, fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
	}

	last.Stats.RenderTime = time.Since(start)
	return last.Frame, last.Stats, nil
}

// assembleCurrentFrame builds a frame from the shared pixel stats and
// calculates render statistics in a single sweep
func (pr *ProgressiveRaytracer) assembleCurrentFrame(targetSamples int) (*Frame, RenderStats) {
	frame := NewFrame(pr.width, pr.height)
	stats := newRenderStats(pr.width*pr.height, targetSamples)

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			frame.SetPixel(x, y, pixel.GetColor())
			stats.update(pixel.SampleCount)
		}
	}

	stats.finalize()
	return frame, stats
}
