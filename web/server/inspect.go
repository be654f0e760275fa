package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	ShapeIndex   int                    `json:"shapeIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult describes the nearest shape on a primary ray
type InspectResult struct {
	Hit        bool
	HitInfo    geometry.HitInfo
	Distance   float64
	Shape      geometry.Shape
	ShapeIndex int
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo classifies a material and lists its properties
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"diffuse":          vecArray(mat.DiffuseColor),
		"specular":         vecArray(mat.SpecularColor),
		"emission":         vecArray(mat.EmissionColor),
		"emissionStrength": mat.EmissionStrength,
		"smoothness":       mat.Smoothness,
		"specularChance":   mat.SpecularChance,
	}

	switch {
	case mat.IsEmissive():
		properties["color"] = hexColor(mat.Emitted())
		return "emissive", properties
	case mat.Smoothness >= 1:
		properties["color"] = hexColor(mat.SpecularColor)
		return "mirror", properties
	default:
		properties["color"] = hexColor(mat.DiffuseColor)
		return "diffuse", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius()
		return "sphere", properties

	case *geometry.Triangle:
		properties["a"] = vecArray(geom.A)
		properties["b"] = vecArray(geom.B)
		properties["c"] = vecArray(geom.C)
		properties["normal"] = vecArray(geom.Normal())
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through pixel (x, y) and returns the
// nearest shape, using the same ordering rules as rendering
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	camera := renderer.NewCamera(sceneObj.GetCameraConfig(), width, height)
	ray := camera.GetRay(pixelX, pixelY)

	hit, index, ok := sceneObj.Shapes.HitIndex(ray)
	if !ok {
		return InspectResult{Distance: math.Inf(1), ShapeIndex: -1}
	}
	return InspectResult{
		Hit:        true,
		HitInfo:    hit,
		Distance:   hit.Point.Subtract(ray.Origin).Length(),
		Shape:      sceneObj.Shapes[index],
		ShapeIndex: index,
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sampling := scene.MergeSamplingConfig(sceneObj.GetSamplingConfig(), renderer.SamplingConfig{
		Width:  inspectReq.Width,
		Height: inspectReq.Height,
	})
	if pixelX < 0 || pixelX >= sampling.Width || pixelY < 0 || pixelY >= sampling.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, sampling.Width, sampling.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ShapeIndex: -1})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitInfo.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		ShapeIndex:   result.ShapeIndex,
		Point:        vecArray(result.HitInfo.Point),
		Normal:       vecArray(result.HitInfo.Normal),
		Distance:     result.Distance,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
