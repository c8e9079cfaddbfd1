package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

// NumberService issues globally unique document numbers. Snowflake IDs are
// time-ordered, so numbers sort chronologically without a DB sequence.
type NumberService struct {
	node *snowflake.Node
}

// NewNumberService builds the generator. NODE_ID distinguishes concurrent
// server instances; single-instance deployments can leave it unset.
func NewNumberService() (*NumberService, error) {
	nodeID := int64(1)
	if v := os.Getenv("NODE_ID"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 || n > 1023 {
			return nil, fmt.Errorf("invalid NODE_ID %q (want 0..1023)", v)
		}
		nodeID = n
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node: %w", err)
	}
	return &NumberService{node: node}, nil
}

func (s *NumberService) QuoteNumber() string {
	return "QT-" + s.node.Generate().String()
}

func (s *NumberService) InvoiceNumber() string {
	return "INV-" + s.node.Generate().String()
}
