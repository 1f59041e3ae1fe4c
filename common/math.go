package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// Perspective creates a right-handed perspective projection matrix targeting
// WebGPU clip space, where depth maps to [0, 1] instead of the OpenGL [-1, 1]
// range produced by mgl32.Perspective.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1.0
	m[14] = (near * far) / (near - far)
	return m
}

// LookAt creates a view matrix that positions and orients the camera.
// Falls back to the identity matrix when eye and center coincide, since no
// viewing direction can be derived.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	if eye.Sub(center).Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.LookAtV(eye, center, up)
}

// EulerXYZ builds a rotation matrix from Euler angles applied in X, then Y, then Z order
// (R = Rx * Ry * Rz), the same convention scene primitives use for their orientation.
//
// Parameters:
//   - rot: rotation angles in radians around each axis
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func EulerXYZ(rot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(rot.X()).
		Mul4(mgl32.HomogRotate3DY(rot.Y())).
		Mul4(mgl32.HomogRotate3DZ(rot.Z()))
}

// Spherical converts spherical coordinates around the +Y axis to a cartesian offset.
// A polar angle of 0 points straight up; an azimuth of 0 points along +Z.
//
// Parameters:
//   - radius: distance from the origin
//   - azimuth: horizontal angle around the Y axis in radians
//   - polar: angle from the +Y axis in radians
//
// Returns:
//   - mgl32.Vec3: the offset vector
func Spherical(radius, azimuth, polar float32) mgl32.Vec3 {
	sinPolar := float32(math.Sin(float64(polar)))
	return mgl32.Vec3{
		radius * sinPolar * float32(math.Sin(float64(azimuth))),
		radius * float32(math.Cos(float64(polar))),
		radius * sinPolar * float32(math.Cos(float64(azimuth))),
	}
}
