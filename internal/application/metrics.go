package application

import "expvar"

// relationOps counts relation mutations by outcome; served on /debug/vars.
var relationOps = expvar.NewMap("relation_ops")

func countOp(name string) { relationOps.Add(name, 1) }
