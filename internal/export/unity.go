package export

import (
	"os"
	"text/template"
)

// unityTemplate emits an Editor helper that imports the exported OBJ with
// sensible scale and lighting matching the metadata.
var unityTemplate = template.Must(template.New("unity").Parse(`// Auto-generated world import helper.
// Drop this file into Assets/Editor/ next to the exported world files.
using UnityEngine;
using UnityEditor;

public static class WorldforgeImport
{
    const string ObjPath = "Assets/{{.ObjFile}}";

    [MenuItem("Tools/Worldforge/Import World")]
    public static void Import()
    {
        var asset = AssetDatabase.LoadAssetAtPath<GameObject>(ObjPath);
        if (asset == null)
        {
            Debug.LogError("world OBJ not found at " + ObjPath);
            return;
        }

        var world = Object.Instantiate(asset);
        world.name = "{{.Name}}";
        world.transform.position = Vector3.zero;

        var sun = new GameObject("Sun").AddComponent<Light>();
        sun.type = LightType.Directional;
        sun.color = new Color({{printf "%.3f" (index .SunColor 0)}}f, {{printf "%.3f" (index .SunColor 1)}}f, {{printf "%.3f" (index .SunColor 2)}}f);
        sun.intensity = {{printf "%.2f" .SunIntensity}}f;
        sun.transform.rotation = Quaternion.LookRotation(new Vector3(
            {{printf "%.4f" (index .SunDirection 0)}}f,
            {{printf "%.4f" (index .SunDirection 1)}}f,
            {{printf "%.4f" (index .SunDirection 2)}}f));

        RenderSettings.ambientIntensity = {{printf "%.2f" .Ambient}}f;
        RenderSettings.fogDensity = {{printf "%.4f" .FogDensity}}f;
        RenderSettings.fog = RenderSettings.fogDensity > 0f;

        Debug.Log("imported {{.Name}}: {{.Triangles}} triangles");
    }
}
`))

type unityData struct {
	Name         string
	ObjFile      string
	SunColor     [3]float64
	SunDirection [3]float64
	SunIntensity float64
	Ambient      float64
	FogDensity   float64
	Triangles    int
}

func writeUnityScript(path string, w *World) error {
	data := unityData{
		Name:         w.Schema.Biome + "_" + w.Schema.TerrainType,
		ObjFile:      objFileName,
		SunColor:     w.Lighting.SunColor,
		SunDirection: w.Lighting.SunDirection,
		SunIntensity: w.Lighting.SunIntensity,
		Ambient:      w.Lighting.AmbientIntensity,
		FogDensity:   w.Lighting.FogDensity,
		Triangles:    w.Scene.TriangleCount,
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := unityTemplate.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
