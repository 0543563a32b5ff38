package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
)

// GenerateImageHash hashes the decoded pixels, so two renders of the same
// page compare equal regardless of PNG encoding.
func GenerateImageHash(img image.Image) string {
	hasher := sha256.New()
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			fmt.Fprintf(hasher, "%d%d%d%d", r, g, b, a)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// HashChunks returns the hex SHA-256 of the concatenated chunks.
func HashChunks(chunks ...[]byte) string {
	hasher := sha256.New()
	for _, c := range chunks {
		hasher.Write(c)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
