// Package image1bit provides a 1-bit monochrome image format for LED matrix
// displays.
//
// A monochrome LED matrix has no intensity levels: a pixel is either lit or
// dark. Pixels are stored in horizontal LSB packing where each byte contains
// 8 pixels and bit 0 is the leftmost pixel.
//
// Memory layout example for an 8-pixel row:
//
//	Pixels: 0  1  2  3  4  5  6  7
//	Values: 1  0  1  1  0  0  0  1
//	Byte:   0x8D
//	        (bit 0: pixel 0, bit 7: pixel 7)
//
// This package provides:
//
// - Bit: A color type representing a binary pixel (On or Off)
// - BitModel: A color model for converting standard Go colors to Bit
// - HorizontalLSB: An image.Image implementation in horizontal LSB packing
//
// Example usage:
//
//	// Create an 8x8 image
//	img := image1bit.NewHorizontalLSB(image.Rect(0, 0, 8, 8))
//
//	// Light a pixel
//	img.SetBit(3, 5, image1bit.On)
//
//	// Get a pixel
//	b := img.BitAt(3, 5)
//	println(b.String())  // Output: On
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
