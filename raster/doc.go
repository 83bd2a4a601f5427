// Package raster turns encoded or decoded images into the grayscale pixel
// field scanned by the tables package.
//
// A [Grid] exposes only width, height, and per-pixel intensity (0-255).
// [Gray] adapts an *image.Gray; [Func] adapts an arbitrary accessor.
//
// [Prepare] applies the contrast boost and grayscale conversion that
// scanned tables need before their ruling lines can be thresholded:
//
//	img, err := raster.Open("timetable.jpg")
//	if err != nil {
//	    // handle error
//	}
//	grid := raster.NewGray(raster.Prepare(img, raster.DefaultContrast))
package raster
