package idgen

import (
	"log"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init builds the process-wide generator node. Movement ledger ids depend on
// it, so a failure here is fatal at startup.
func Init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Failed to initialize the movement ID generator: %v", err)
	}
}

// GenerateID returns the next ledger id.
func GenerateID() int64 {
	return node.Generate().Int64()
}
