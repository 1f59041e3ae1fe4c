package scene

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// PoseKey identifies which procedural body configuration to render.
type PoseKey string

const (
	// PoseStanding is the upright reference pose and the fallback for any unrecognized key.
	PoseStanding PoseKey = "standing"

	// PoseSquat is the squat reference pose with the legs splayed outward.
	PoseSquat PoseKey = "squat"
)

// DefaultPose is the pose used whenever a key cannot be resolved.
const DefaultPose = PoseStanding

// ErrInvalidPoseKey is wrapped by ParsePoseKey when the key is not registered.
var ErrInvalidPoseKey = errors.New("invalid pose key")

// legPlacement positions a single leg cylinder.
type legPlacement struct {
	position mgl32.Vec3
	rotation mgl32.Vec3
}

// legLayout is the per-pose arrangement of both legs. Every other body segment
// is shared between poses, so adding a pose means adding a row here.
type legLayout struct {
	left  legPlacement
	right legPlacement
}

var legLayouts = map[PoseKey]legLayout{
	PoseStanding: {
		left:  legPlacement{position: mgl32.Vec3{-0.2, 0, 0}},
		right: legPlacement{position: mgl32.Vec3{0.2, 0, 0}},
	},
	PoseSquat: {
		left: legPlacement{
			position: mgl32.Vec3{-0.3, -0.2, 0},
			rotation: mgl32.Vec3{0, 0, math.Pi / 6},
		},
		right: legPlacement{
			position: mgl32.Vec3{0.3, -0.2, 0},
			rotation: mgl32.Vec3{0, 0, -math.Pi / 6},
		},
	},
}

// ParsePoseKey resolves a raw key. Matching is exact and case-sensitive.
// Unknown keys resolve to DefaultPose together with an error wrapping
// ErrInvalidPoseKey, so callers may log the diagnostic and carry on with the
// returned key.
//
// Parameters:
//   - raw: the key supplied by the host
//
// Returns:
//   - PoseKey: the resolved key, DefaultPose when unknown
//   - error: nil on success, otherwise wraps ErrInvalidPoseKey
func ParsePoseKey(raw string) (PoseKey, error) {
	key := PoseKey(raw)
	if key.Known() {
		return key, nil
	}
	return DefaultPose, fmt.Errorf("%w: %q, using %s", ErrInvalidPoseKey, raw, DefaultPose)
}

// Known reports whether the key has a registered layout.
func (k PoseKey) Known() bool {
	_, ok := legLayouts[k]
	return ok
}

// Resolve returns k when it is registered and DefaultPose otherwise.
func (k PoseKey) Resolve() PoseKey {
	if k.Known() {
		return k
	}
	return DefaultPose
}

func (k PoseKey) String() string {
	return string(k)
}

// PoseKeys returns every registered pose in lexical order.
func PoseKeys() []PoseKey {
	keys := make([]PoseKey, 0, len(legLayouts))
	for k := range legLayouts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
