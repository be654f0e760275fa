package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("server")

// Request limits shared by the render, stream and inspect endpoints
const (
	minDimension  = 1
	maxDimension  = 2000
	maxSamples    = 10000
	maxBounces    = 100
	maxPasses     = 1000
	defaultScene  = "cornell"
	defaultPasses = 7
)

// Server handles web requests for the path tracer
type Server struct {
	port     int
	sceneDir string
	mux      *http.ServeMux
}

// NewServer creates a new web server. Scene files are discovered in sceneDir.
func NewServer(port int, sceneDir string) *Server {
	s := &Server{port: port, sceneDir: sceneDir, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene ID, see /api/scenes
	Width           int    `json:"width"`           // Image width, 0 = scene recommendation
	Height          int    `json:"height"`          // Image height, 0 = scene recommendation
	SamplesPerPixel int    `json:"samplesPerPixel"` // 0 = scene recommendation
	MaxBounces      int    `json:"maxBounces"`      // -1 = scene recommendation
	MaxPasses       int    `json:"maxPasses"`       // Progressive passes
	Seed            int64  `json:"seed"`            // 0 = scene seed
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
}

func statsFrom(s renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    s.TotalPixels,
		TotalSamples:   s.TotalSamples,
		AverageSamples: s.AverageSamples,
		MaxSamples:     s.MaxSamples,
		MinSamples:     s.MinSamples,
		MaxSamplesUsed: s.MaxSamplesUsed,
	}
}

// Handler returns the request router, for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("Starting web server on http://localhost%s (scenes from %q)", addr, s.sceneDir)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and the scene files found in the scene directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = defaultScene
	}

	sceneObj, err := s.createScene(sceneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sampling := sceneObj.GetSamplingConfig()
	camera := sceneObj.GetCameraConfig()
	response := map[string]interface{}{
		"scene":       sceneID,
		"name":        sceneObj.Name,
		"description": sceneObj.Description,
		"primitives":  sceneObj.GetPrimitiveCount(),
		"emitters":    sceneObj.GetEmitterCount(),
		"camera": map[string]interface{}{
			"center":      [3]float64{camera.Center.X, camera.Center.Y, camera.Center.Z},
			"focalLength": camera.FocalLength,
		},
		"defaults": map[string]interface{}{
			"width":           sampling.Width,
			"height":          sampling.Height,
			"samplesPerPixel": sampling.SamplesPerPixel,
			"maxBounces":      sampling.MaxBounces,
			"maxPasses":       defaultPasses,
			"seed":            sampling.Seed,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minDimension, "max": maxDimension},
			"height":          map[string]int{"min": minDimension, "max": maxDimension},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxBounces":      map[string]int{"min": 0, "max": maxBounces},
			"maxPasses":       map[string]int{"min": 1, "max": maxPasses},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// handleRender renders a frame synchronously and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	pipeline, err := s.setupRenderingPipeline(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	frame, stats, err := pipeline.Raytracer.Render(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("Rendering failed: %v", err))
		return
	}
	logger.Infof("Rendered %s at %dx%d in %v", req.Scene, frame.Width, frame.Height, stats.RenderTime)

	var buf bytes.Buffer
	if err := loaders.EncodePNG(&buf, frame.Image); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.RenderTime.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseCommonSceneParams parses the scene and image size parameters
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	values := r.URL.Query()

	req.Scene = values.Get("scene")
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minDimension, maxDimension); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minDimension, maxDimension); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	values := r.URL.Query()
	var err error
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(values, "bounces", -1, 0, maxBounces); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(values, "passes", defaultPasses, 1, maxPasses); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		logger.Warningf("Large image with high samples may render slowly")
	}

	return req, nil
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Sampling  renderer.SamplingConfig
	Raytracer *renderer.ProgressiveRaytracer
}

// setupRenderingPipeline creates the scene and a progressive raytracer for it
func (s *Server) setupRenderingPipeline(req *RenderRequest) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, err
	}

	sampling := scene.MergeSamplingConfig(sceneObj.GetSamplingConfig(), renderer.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
		Seed:            req.Seed,
	})
	if req.MaxBounces >= 0 {
		sampling.MaxBounces = req.MaxBounces
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxPasses = req.MaxPasses

	raytracer, err := renderer.NewProgressiveRaytracer(sceneObj, sampling, config)
	if err != nil {
		return nil, err
	}

	return &RenderingPipeline{
		Scene:     sceneObj,
		Sampling:  sampling,
		Raytracer: raytracer,
	}, nil
}

// createScene resolves a scene ID. File scenes must come from the scene
// directory so clients cannot read arbitrary paths.
func (s *Server) createScene(id string) (*scene.Scene, error) {
	for _, info := range scene.ListBuiltinScenes() {
		if info.ID == id {
			return scene.Create(id)
		}
	}

	files, err := scene.ListSceneFiles(s.sceneDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			return scene.Create(id)
		}
	}

	return nil, fmt.Errorf("%w: %s", scene.ErrUnknownScene, id)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := loaders.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
