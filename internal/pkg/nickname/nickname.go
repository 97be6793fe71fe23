// Package nickname generates throwaway display names for anonymous
// commenters, e.g. "Silver Fox 4821".
package nickname

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var animals = []string{"Cat", "Fox", "Wolf", "Bear", "Deer", "Rabbit", "Owl", "Tiger", "Sparrow", "Otter"}

var colors = []string{"Red", "Blue", "Golden", "Purple", "Orange", "Pink", "Black", "Silver"}

func randomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return 0
	}
	return int(n.Int64())
}

// Generate returns a random "<Color> <Animal> <number>" nickname.
func Generate() string {
	a := animals[randomInt(len(animals))]
	c := colors[randomInt(len(colors))]
	n := 1000 + randomInt(9000)
	return fmt.Sprintf("%s %s %d", c, a, n)
}
