package jpegcoeff

// unzig maps a zigzag scan index to its natural (row-major) position within
// an 8x8 block, per JPEG Annex A Figure A.6. Coefficients are kept in zigzag
// order throughout this package (stdlib image/jpeg does the same), so this
// table is only needed when a caller wants the natural 2-D layout.
var unzig = [blockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}
