package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateOTP returns a numeric code of the given length without a
// leading zero, e.g. 1000-9999 for length 4.
func GenerateOTP(length int) string {
	if length <= 0 {
		return ""
	}
	low := int64(1)
	for i := 1; i < length; i++ {
		low *= 10
	}
	span := low*10 - low
	if length == 1 {
		low, span = 0, 10
	}
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return strconv.FormatInt(low, 10)
	}
	return strconv.FormatInt(low+n.Int64(), 10)
}
