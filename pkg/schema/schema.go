// Package schema defines the world-generation contract: the validated
// WorldSchema consumed by the pipeline and the WorldResult it reports back.
package schema

// PathKind identifies how a path deforms the terrain under its corridor.
type PathKind string

// Path kinds.
const (
	PathRoad  PathKind = "road"
	PathRiver PathKind = "river"
)

// StructureKind identifies a parametric structure archetype. The set is
// closed; geometry construction switches exhaustively over it.
type StructureKind string

// Structure kinds.
const (
	KindTower  StructureKind = "tower"
	KindSpire  StructureKind = "spire"
	KindDome   StructureKind = "dome"
	KindBridge StructureKind = "bridge"
)

// NoiseParams configures the multi-octave height function.
type NoiseParams struct {
	Octaves        int        `json:"octaves"`
	Frequency      float64    `json:"frequency"`
	Lacunarity     float64    `json:"lacunarity"`
	Persistence    float64    `json:"persistence"`
	AmplitudeRange [2]float64 `json:"amplitude_range"` // min/max elevation in meters
}

// PathSpec describes one road or river as an ordered waypoint list.
// Waypoints are XYZ in meters; Y is ignored (paths follow the terrain).
type PathSpec struct {
	Name      string       `json:"name"`
	Kind      PathKind     `json:"kind"`
	Waypoints [][3]float64 `json:"waypoints"`
	Width     float64      `json:"width"`
	Depth     float64      `json:"depth,omitempty"` // river carve depth in meters
	Material  string       `json:"material,omitempty"`
}

// PlacementRule describes one batch of structures to place.
type PlacementRule struct {
	Kind        StructureKind `json:"kind"`
	CountRange  [2]int        `json:"count_range"`
	HeightRange [2]float64    `json:"height_range"` // meters
	ScaleRange  [2]float64    `json:"scale_range"`  // footprint multiplier

	// Archetype parameters. Zero values fall back to per-kind defaults.
	Segments int     `json:"segments,omitempty"`  // tower: stacked segment count
	Taper    float64 `json:"taper,omitempty"`     // tower: per-segment radius ratio (0,1]
	CutRatio float64 `json:"cut_ratio,omitempty"` // dome: base cut height as fraction of radius

	// ScatterRadius restricts candidate sites to an annulus around the world
	// center. Zero means anywhere on the grid.
	ScatterRadius float64 `json:"scatter_radius,omitempty"`
}

// SpeciesMix is one weighted entry of the vegetation species distribution.
type SpeciesMix struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// VegetationSpec configures instanced vegetation scattering.
type VegetationSpec struct {
	DensityPerKm2 float64      `json:"density_per_km2"`
	Species       []SpeciesMix `json:"species,omitempty"`
	HeightRange   [2]float64   `json:"height_range"`
}

// LightingSpec is consumed by export metadata only; it never affects geometry.
type LightingSpec struct {
	SunAzimuth       float64    `json:"sun_azimuth"`   // degrees, 0-360
	SunElevation     float64    `json:"sun_elevation"` // degrees above horizon
	AmbientIntensity float64    `json:"ambient_intensity"`
	SkyColor         [3]float64 `json:"sky_color"`
	FogDensity       float64    `json:"fog_density"`
	Mood             string     `json:"mood,omitempty"`
}

// SkySpec is consumed by export metadata only.
type SkySpec struct {
	Type         string  `json:"type,omitempty"` // clear, cloudy, storm, aurora, stars
	CloudDensity float64 `json:"cloud_density"`
	Haze         float64 `json:"haze"`
}

// WorldSchema is the validated, immutable input of one generation run.
// Together with a seed it fully determines the generated world.
type WorldSchema struct {
	Biome       string `json:"biome"`
	TerrainType string `json:"terrain_type"`
	Mood        string `json:"mood,omitempty"`
	TimeOfDay   string `json:"time_of_day,omitempty"`

	ScaleKm float64 `json:"scale_km"`

	// GridResolution is the number of terrain cells per side. The vertex
	// grid is (GridResolution+1) squared.
	GridResolution int `json:"grid_resolution"`

	Noise      NoiseParams     `json:"noise"`
	Paths      []PathSpec      `json:"paths,omitempty"`
	Structures []PlacementRule `json:"structures,omitempty"`
	Vegetation VegetationSpec  `json:"vegetation"`
	Lighting   LightingSpec    `json:"lighting"`
	Sky        SkySpec         `json:"sky"`

	Seed int64 `json:"seed"`
}

// SizeMeters returns the world edge length in meters.
func (s *WorldSchema) SizeMeters() float64 {
	return s.ScaleKm * 1000
}

// StructureReport records achieved versus requested placement for one rule.
type StructureReport struct {
	Kind      StructureKind `json:"kind"`
	Requested int           `json:"requested"`
	Placed    int           `json:"placed"`
}

// WorldResult summarizes one completed generation run.
type WorldResult struct {
	OutputDir    string `json:"output_dir"`
	GeometryFile string `json:"geometry_file"`
	MaterialFile string `json:"material_file"`
	MetadataFile string `json:"metadata_file"`
	PreviewImage string `json:"preview_image"`
	ImportScript string `json:"import_script"`
	ViewerFile   string `json:"viewer_file"`

	Structures          []StructureReport `json:"structures"`
	VegetationRequested int               `json:"vegetation_requested"`
	VegetationPlaced    int               `json:"vegetation_placed"`

	VertexCount   int `json:"vertex_count"`
	TriangleCount int `json:"triangle_count"`
}
