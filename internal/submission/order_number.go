package submission

import (
	"fmt"
	"math/rand/v2"
)

const orderNumberPrefix = "LC-"

// NumberFunc generates an order identifier.
type NumberFunc func() string

// RandomOrderNumber returns the prefix plus four random digits.
// Numbers are not checked for uniqueness; collisions between orders are possible.
func RandomOrderNumber() string {
	return fmt.Sprintf("%s%d", orderNumberPrefix, 1000+rand.IntN(9000))
}
