package redis

import "os"

type StreamConfig struct {
	Addr         string
	Password     string
	Stream       string
	GroupID      string
	ConsumerName string
}

func NewRedisStreamConfig(addr, password, stream, groupID, consumerName string) *StreamConfig {
	if addr == "" {
		addr = "localhost:6379"
	}
	if stream == "" {
		stream = "retrieval-jobs"
	}
	if groupID == "" {
		groupID = "retrieval-group"
	}
	if consumerName == "" {
		consumerName, _ = os.Hostname()
	}
	return &StreamConfig{
		Addr:         addr,
		Password:     password,
		Stream:       stream,
		GroupID:      groupID,
		ConsumerName: consumerName,
	}
}
