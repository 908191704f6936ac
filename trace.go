package depot

import "github.com/TheBitDrifter/bark"

// panicTraced raises a programmer-error precondition violation after
// wrapping it with bark's call-site trace.
func panicTraced(err error) {
	panic(bark.AddTrace(err))
}
