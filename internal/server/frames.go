package server

import (
	"image"

	"nstego/pkg/imagecodec"
)

// framesOf and setFrames bridge imagecodec's FrameSet and multiframe's
// []*image.RGBA so the image handlers can share one code path for
// single-frame and animated/paged covers.
func framesOf(fs *imagecodec.FrameSet) []*image.RGBA {
	frames := make([]*image.RGBA, len(fs.Frames))
	for i, f := range fs.Frames {
		frames[i] = f.Image
	}
	return frames
}

func setFrames(fs *imagecodec.FrameSet, frames []*image.RGBA) {
	for i, img := range frames {
		fs.Frames[i].Image = img
	}
}
