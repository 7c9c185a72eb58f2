// Package morpho is a grayscale and binary mathematical morphology engine
// for 2-D rasters, built around one neighborhood walker that every operator
// shares.
//
// 🚀 What is morpho?
//
//	A pure-Go toolbox for removing backgrounds and isolating objects in
//	single-band images such as digital surface models:
//		• Neighborhoods: structuring elements, origins, connectivity, walkers
//		• Gray morphology: flat and non-flat erosion / dilation, open, close
//		• Binary morphology: logical, 3×3 fast path, bit-packed images
//		• Linear filters: van Herk line, rectangle and octagon erosion
//		• Reconstruction: fast-hybrid grayscale reconstruction, h-maxima
//		• Top-hat: image - reconstruct(erode(image), image)
//		• Regions: labeling and measuring the extracted objects
//
// Under the hood, everything is organized in flat subpackages:
//
//	neighborhood/ - offsets, origin policies, Shape, Walker and Cursor
//	morph/        - gray and binary erosion / dilation over walkers
//	packed/       - 32-rows-per-word binary images and their morphology
//	linear/       - van Herk / Gil-Werman running min and max
//	reconstruct/  - morphological reconstruction by dilation
//	tophat/       - the top-hat by reconstruction pipeline
//	regions/      - connected regions of foreground pixels
//	raster/       - integer TIFF and zstd float32 raster I/O
//	cmd/tophat    - command-line front end
//
// Quick example:
//
//	out, err := tophat.TopHat(img, rows, cols, nil, 0, 0) // 3×3 element
//	if err != nil { ... }
//	_, objs, _ := tophat.Objects(out, neighborhood.Shape{Rows: rows, Cols: cols}, 2.5, neighborhood.Conn8)
//
// Images are row-major: pixel (r, c) lives at index r*cols + c.
//
//	go get github.com/xinyuangui2/morpho
package morpho
