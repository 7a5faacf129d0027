package uid

import (
	"crypto/sha256"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 identifiers.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator whose node ID is derived from a stable
// machine identity (/etc/machine-id, falling back to hostname), so replicas
// on different hosts do not collide.
func NewSnowflake() (*Snowflake, error) {
	sum := sha256.Sum256([]byte(machineIdentity()))
	nodeID := int64(sum[0])<<2 | int64(sum[1])>>6 // 10 bits

	node, err := snowflake.NewNode(nodeID % 1024)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func machineIdentity() string {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s
		}
	}

	if h, err := os.Hostname(); err == nil {
		if h = strings.TrimSpace(h); h != "" {
			return h
		}
	}

	return "otpsender"
}
