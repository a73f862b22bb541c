// Package resource creates images and buffers from a closed catalogue of kinds. Each kind
// declares the usage, memory location and view requirements of the resources built from it,
// so callers never assemble native create infos by hand. Factories roll back every step they
// completed before returning an error, and resources are destroyed view first, then the
// native handle, then the memory allocation.
package resource

import (
	"fmt"

	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// ImageKind is one of the image shapes this package knows how to build
type ImageKind int32

const (
	// ImageKindRenderTarget is a color attachment that can later be sampled or copied from
	ImageKindRenderTarget ImageKind = iota
	// ImageKindDepthTarget is a depth attachment
	ImageKindDepthTarget
	// ImageKindSampledTexture is a read-only texture filled through a staging upload
	ImageKindSampledTexture
	// ImageKindStorageImage is read and written by shaders
	ImageKindStorageImage
)

var imageKindMapping = map[ImageKind]string{
	ImageKindRenderTarget:   "ImageKindRenderTarget",
	ImageKindDepthTarget:    "ImageKindDepthTarget",
	ImageKindSampledTexture: "ImageKindSampledTexture",
	ImageKindStorageImage:   "ImageKindStorageImage",
}

func (k ImageKind) String() string {
	str, ok := imageKindMapping[k]
	if !ok {
		return "unknown ImageKind"
	}

	return str
}

// ImageKindInfo is the declared metadata of an ImageKind
type ImageKindInfo struct {
	Usage    core1_0.ImageUsageFlags
	Aspect   core1_0.ImageAspectFlags
	Location gpumem.Location
	// ViewRequired images get an image view created alongside them
	ViewRequired  bool
	InitialLayout core1_0.ImageLayout
}

var imageKinds = map[ImageKind]ImageKindInfo{
	ImageKindRenderTarget: {
		Usage:         core1_0.ImageUsageColorAttachment | core1_0.ImageUsageSampled | core1_0.ImageUsageTransferSrc,
		Aspect:        core1_0.ImageAspectColor,
		Location:      gpumem.LocationGPUOnly,
		ViewRequired:  true,
		InitialLayout: core1_0.ImageLayoutUndefined,
	},
	ImageKindDepthTarget: {
		Usage:         core1_0.ImageUsageDepthStencilAttachment,
		Aspect:        core1_0.ImageAspectDepth,
		Location:      gpumem.LocationGPUOnly,
		ViewRequired:  true,
		InitialLayout: core1_0.ImageLayoutUndefined,
	},
	ImageKindSampledTexture: {
		Usage:         core1_0.ImageUsageSampled | core1_0.ImageUsageTransferDst,
		Aspect:        core1_0.ImageAspectColor,
		Location:      gpumem.LocationGPUOnly,
		ViewRequired:  true,
		InitialLayout: core1_0.ImageLayoutUndefined,
	},
	ImageKindStorageImage: {
		Usage:         core1_0.ImageUsageStorage | core1_0.ImageUsageSampled | core1_0.ImageUsageTransferSrc,
		Aspect:        core1_0.ImageAspectColor,
		Location:      gpumem.LocationGPUOnly,
		ViewRequired:  true,
		InitialLayout: core1_0.ImageLayoutUndefined,
	},
}

// Info returns the kind's declared metadata. Kinds outside the catalogue panic.
func (k ImageKind) Info() ImageKindInfo {
	info, ok := imageKinds[k]
	if !ok {
		panic(fmt.Sprintf("resource: unknown image kind %d", k))
	}

	return info
}

// ImageKinds enumerates the image catalogue
func ImageKinds() []ImageKind {
	return []ImageKind{ImageKindRenderTarget, ImageKindDepthTarget, ImageKindSampledTexture, ImageKindStorageImage}
}

// BufferKind is one of the buffer shapes this package knows how to build
type BufferKind int32

const (
	BufferKindVertex BufferKind = iota
	BufferKindIndex
	// BufferKindUniform lives in host visible memory and is written directly every frame
	BufferKindUniform
	BufferKindStorage
	// BufferKindStaging is the host-written source of uploads
	BufferKindStaging
	// BufferKindReadback is the device-written destination of downloads
	BufferKindReadback
)

var bufferKindMapping = map[BufferKind]string{
	BufferKindVertex:   "BufferKindVertex",
	BufferKindIndex:    "BufferKindIndex",
	BufferKindUniform:  "BufferKindUniform",
	BufferKindStorage:  "BufferKindStorage",
	BufferKindStaging:  "BufferKindStaging",
	BufferKindReadback: "BufferKindReadback",
}

func (k BufferKind) String() string {
	str, ok := bufferKindMapping[k]
	if !ok {
		return "unknown BufferKind"
	}

	return str
}

// BufferKindInfo is the declared metadata of a BufferKind
type BufferKindInfo struct {
	Usage    core1_0.BufferUsageFlags
	Location gpumem.Location
}

var bufferKinds = map[BufferKind]BufferKindInfo{
	BufferKindVertex: {
		Usage:    core1_0.BufferUsageVertexBuffer | core1_0.BufferUsageTransferDst,
		Location: gpumem.LocationGPUOnly,
	},
	BufferKindIndex: {
		Usage:    core1_0.BufferUsageIndexBuffer | core1_0.BufferUsageTransferDst,
		Location: gpumem.LocationGPUOnly,
	},
	BufferKindUniform: {
		Usage:    core1_0.BufferUsageUniformBuffer,
		Location: gpumem.LocationCPUToGPU,
	},
	BufferKindStorage: {
		Usage:    core1_0.BufferUsageStorageBuffer | core1_0.BufferUsageTransferDst | core1_0.BufferUsageTransferSrc,
		Location: gpumem.LocationGPUOnly,
	},
	BufferKindStaging: {
		Usage:    core1_0.BufferUsageTransferSrc,
		Location: gpumem.LocationCPUToGPU,
	},
	BufferKindReadback: {
		Usage:    core1_0.BufferUsageTransferDst,
		Location: gpumem.LocationGPUToCPU,
	},
}

// Info returns the kind's declared metadata. Kinds outside the catalogue panic.
func (k BufferKind) Info() BufferKindInfo {
	info, ok := bufferKinds[k]
	if !ok {
		panic(fmt.Sprintf("resource: unknown buffer kind %d", k))
	}

	return info
}

// BufferKinds enumerates the buffer catalogue
func BufferKinds() []BufferKind {
	return []BufferKind{BufferKindVertex, BufferKindIndex, BufferKindUniform, BufferKindStorage, BufferKindStaging, BufferKindReadback}
}

var formatTexelSizes = map[core1_0.Format]int{
	core1_0.FormatR8UnsignedNormalized:       1,
	core1_0.FormatR8G8B8A8UnsignedNormalized: 4,
	core1_0.FormatR8G8B8A8SRGB:               4,
	core1_0.FormatB8G8R8A8UnsignedNormalized: 4,
	core1_0.FormatB8G8R8A8SRGB:               4,
	core1_0.FormatD32SignedFloat:             4,
	core1_0.FormatR32G32B32A32SignedFloat:    16,
}

// TexelSize is the number of bytes one texel of format occupies in tightly packed upload
// data. It reports false for formats uploads don't support.
func TexelSize(format core1_0.Format) (int, bool) {
	size, ok := formatTexelSizes[format]
	return size, ok
}
