// Package spatial provides the coordinate types and the Morton (Z-order)
// key encoding used to address terrain chunks.
//
// A chunk coordinate is three signed 16-bit axes. PackCoordinate interleaves
// their bits into a single 48-bit key so that chunks that are close in space
// produce keys that share long common prefixes. The key is never decoded back
// to a coordinate; it is only decomposed into fixed-width digits for index
// traversal and used as a stable file identity.
package spatial
