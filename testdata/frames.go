// Package testdata builds synthetic camera frames for pipeline tests.
// Frames are plain gray images with a bright square blob; moving the
// blob between frames produces the luminance changes the motion
// detector keys on, without any binary fixtures.
package testdata

import "image"

const (
	// SourceWidth and SourceHeight match the native capture size.
	SourceWidth  = 640
	SourceHeight = 480

	// Background and BlobShade are the gray levels used by the
	// builders. Their luminance gap is far above the detection
	// threshold.
	Background = 100
	BlobShade  = 255

	// BlobSize is the blob edge length in source pixels. After the
	// 2x downsample it still covers enough sampled pixels to clear
	// the changed-sample floor.
	BlobSize = 80
)

// Frame returns a uniform frame of the given shade at the native
// capture size.
func Frame(shade uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SourceWidth, SourceHeight))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = shade
		img.Pix[i+1] = shade
		img.Pix[i+2] = shade
		img.Pix[i+3] = 0xff
	}
	return img
}

// PaintBlob fills a BlobSize square centered at (cx, cy), clipped to
// the frame bounds.
func PaintBlob(img *image.RGBA, cx, cy int, shade uint8) {
	half := BlobSize / 2
	bounds := img.Bounds()
	for y := cy - half; y < cy+half; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - half; x < cx+half; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			i := img.PixOffset(x, y)
			img.Pix[i] = shade
			img.Pix[i+1] = shade
			img.Pix[i+2] = shade
		}
	}
}

// BlobFrame returns a background frame with a single blob centered at
// (cx, cy).
func BlobFrame(cx, cy int) *image.RGBA {
	img := Frame(Background)
	PaintBlob(img, cx, cy, BlobShade)
	return img
}

// MotionFrames returns n frames whose blob starts centered at
// (startX, startY) and moves by (stepX, stepY) per frame. Consecutive
// frames differ over both blob positions, so the detected centroid of
// each pair sits midway between the previous and current centers.
func MotionFrames(n, startX, startY, stepX, stepY int) []image.Image {
	frames := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, BlobFrame(startX+i*stepX, startY+i*stepY))
	}
	return frames
}

// PulseFrames returns n frames whose blob stays centered at (cx, cy)
// but alternates shade every frame. Every consecutive pair differs
// across the whole blob, yielding a stationary centroid, which is the
// dwell pattern the tap detector fires on.
func PulseFrames(n, cx, cy int) []image.Image {
	frames := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		img := Frame(Background)
		shade := uint8(BlobShade)
		if i%2 == 1 {
			shade = 180
		}
		PaintBlob(img, cx, cy, shade)
		frames = append(frames, img)
	}
	return frames
}

// StaticFrames returns n identical background frames, a sequence with
// no motion at all.
func StaticFrames(n int) []image.Image {
	frames := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, Frame(Background))
	}
	return frames
}
