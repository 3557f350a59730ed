package export

import (
	"fmt"
	"os"
	"text/template"
)

// viewerTemplate renders a self-contained A-Frame page that loads the
// exported OBJ/MTL pair. Open it from the export directory with any
// static file server.
var viewerTemplate = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="https://aframe.io/releases/1.5.0/aframe.min.js"></script>
</head>
<body>
  <a-scene background="color: {{.SkyColor}}" fog="type: exponential; color: {{.SkyColor}}; density: {{printf "%.4f" .FogDensity}}">
    <a-assets>
      <a-asset-item id="world-obj" src="{{.ObjFile}}"></a-asset-item>
      <a-asset-item id="world-mtl" src="{{.MtlFile}}"></a-asset-item>
    </a-assets>

    <a-entity obj-model="obj: #world-obj; mtl: #world-mtl"></a-entity>

    <a-entity light="type: directional; color: {{.SunColor}}; intensity: {{printf "%.2f" .SunIntensity}}"
              position="{{printf "%.2f %.2f %.2f" (index .SunDirection 0) (index .SunDirection 1) (index .SunDirection 2)}}"></a-entity>
    <a-entity light="type: ambient; intensity: {{printf "%.2f" .Ambient}}"></a-entity>

    <a-entity position="{{.CameraPos}}">
      <a-camera wasd-controls="acceleration: 320"></a-camera>
    </a-entity>
  </a-scene>
</body>
</html>
`))

type viewerData struct {
	Title        string
	ObjFile      string
	MtlFile      string
	SkyColor     string
	FogDensity   float64
	SunColor     string
	SunIntensity float64
	SunDirection [3]float64
	Ambient      float64
	CameraPos    string
}

func writeViewer(path string, w *World) error {
	center := w.Schema.SizeMeters() / 2
	camY := float64(w.Scene.Bounds.Max[1]) + 40

	data := viewerData{
		Title:        fmt.Sprintf("%s %s world", w.Schema.Biome, w.Schema.TerrainType),
		ObjFile:      objFileName,
		MtlFile:      mtlFileName,
		SkyColor:     hexColor(w.Lighting.SkyColor),
		FogDensity:   w.Lighting.FogDensity,
		SunColor:     hexColor(w.Lighting.SunColor),
		SunIntensity: w.Lighting.SunIntensity,
		SunDirection: w.Lighting.SunDirection,
		Ambient:      w.Lighting.AmbientIntensity,
		CameraPos:    fmt.Sprintf("%.1f %.1f %.1f", center, camY, center*1.6),
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := viewerTemplate.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func hexColor(c [3]float64) string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c[0]), channel(c[1]), channel(c[2]))
}
