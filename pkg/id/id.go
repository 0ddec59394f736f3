package id

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// NewNode builds the snowflake generator. SNOWFLAKE_NODE distinguishes
// instances when more than one writer shares a database.
func NewNode() (*snowflake.Node, error) {
	nodeID := int64(1)
	if raw := os.Getenv("SNOWFLAKE_NODE"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			nodeID = parsed
		}
	}
	return snowflake.NewNode(nodeID)
}

// Module provides the shared ID generator.
var Module = fx.Module("id",
	fx.Provide(NewNode),
)
