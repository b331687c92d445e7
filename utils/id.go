package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	idGenerator *snowflake.Node
	idOnce      sync.Once
)

// GenerateNewID returns a unique, time ordered id for documents that come
// without one.
func GenerateNewID() int64 {
	idOnce.Do(func() {
		var err error
		idGenerator, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return idGenerator.Generate().Int64()
}
