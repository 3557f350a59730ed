package grid

import "sync"

// OccupancyMask marks samples that are unusable for further placement:
// path corridors, water, steep slopes, and structure footprints.
//
// The mask has a two-phase access contract. During the placement phase
// writes are serialized through an internal mutex. Seal switches the mask
// to its read-only phase; writing after Seal is a programming error and
// panics. Reads after Seal need no synchronization.
type OccupancyMask struct {
	res  int
	size float64
	step float64

	mu     sync.Mutex
	sealed bool
	data   []bool
}

// NewOccupancyMask allocates a clear mask matching a HeightField with the
// given cell count per side and edge length in meters.
func NewOccupancyMask(cells int, size float64) *OccupancyMask {
	res := cells + 1
	return &OccupancyMask{
		res:  res,
		size: size,
		step: size / float64(cells),
		data: make([]bool, res*res),
	}
}

// Res returns the number of samples per side.
func (m *OccupancyMask) Res() int { return m.res }

// Mark flags sample (ix, iz) as occupied. Out-of-range indices are ignored.
func (m *OccupancyMask) Mark(ix, iz int) {
	if ix < 0 || iz < 0 || ix >= m.res || iz >= m.res {
		return
	}
	m.mu.Lock()
	if m.sealed {
		m.mu.Unlock()
		panic("grid: OccupancyMask written after Seal")
	}
	m.data[iz*m.res+ix] = true
	m.mu.Unlock()
}

// MarkCircle flags every sample within radius meters of world position
// (x, z). When the grid is so coarse that no sample falls inside the
// circle, the nearest sample is flagged instead so small footprints never
// vanish from the mask.
func (m *OccupancyMask) MarkCircle(x, z, radius float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sealed {
		panic("grid: OccupancyMask written after Seal")
	}

	ix0 := int((x - radius) / m.step)
	ix1 := int((x+radius)/m.step) + 1
	iz0 := int((z - radius) / m.step)
	iz1 := int((z+radius)/m.step) + 1
	r2 := radius * radius

	hit := false
	for iz := maxInt(iz0, 0); iz <= minInt(iz1, m.res-1); iz++ {
		for ix := maxInt(ix0, 0); ix <= minInt(ix1, m.res-1); ix++ {
			dx := float64(ix)*m.step - x
			dz := float64(iz)*m.step - z
			if dx*dx+dz*dz <= r2 {
				m.data[iz*m.res+ix] = true
				hit = true
			}
		}
	}
	if !hit {
		ix, iz := m.nearest(x, z)
		if ix >= 0 && iz >= 0 && ix < m.res && iz < m.res {
			m.data[iz*m.res+ix] = true
		}
	}
}

// nearest returns the sample indices closest to world position (x, z).
func (m *OccupancyMask) nearest(x, z float64) (int, int) {
	return int(x/m.step + 0.5), int(z/m.step + 0.5)
}

// Seal transitions the mask to its read-only phase.
func (m *OccupancyMask) Seal() {
	m.mu.Lock()
	m.sealed = true
	m.mu.Unlock()
}

// Occupied reports whether sample (ix, iz) is flagged. Out-of-range
// indices count as occupied so placement never escapes the world bounds.
func (m *OccupancyMask) Occupied(ix, iz int) bool {
	if ix < 0 || iz < 0 || ix >= m.res || iz >= m.res {
		return true
	}
	return m.data[iz*m.res+ix]
}

// OccupiedAt reports whether the sample nearest to world position (x, z)
// is flagged.
func (m *OccupancyMask) OccupiedAt(x, z float64) bool {
	ix, iz := m.nearest(x, z)
	return m.Occupied(ix, iz)
}

// OccupiedCircle reports whether any sample within radius meters of world
// position (x, z) is flagged. When no sample falls inside the circle, the
// nearest sample decides, matching the MarkCircle fallback.
func (m *OccupancyMask) OccupiedCircle(x, z, radius float64) bool {
	ix0 := int((x - radius) / m.step)
	ix1 := int((x+radius)/m.step) + 1
	iz0 := int((z - radius) / m.step)
	iz1 := int((z+radius)/m.step) + 1
	r2 := radius * radius

	visited := false
	for iz := maxInt(iz0, 0); iz <= minInt(iz1, m.res-1); iz++ {
		for ix := maxInt(ix0, 0); ix <= minInt(ix1, m.res-1); ix++ {
			dx := float64(ix)*m.step - x
			dz := float64(iz)*m.step - z
			if dx*dx+dz*dz <= r2 {
				visited = true
				if m.data[iz*m.res+ix] {
					return true
				}
			}
		}
	}
	if !visited {
		return m.OccupiedAt(x, z)
	}
	return false
}

// Count returns the number of flagged samples.
func (m *OccupancyMask) Count() int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return n
}
